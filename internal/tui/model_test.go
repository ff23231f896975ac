package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/fileview/internal/highlight"
	"github.com/studiowebux/fileview/internal/types"
)

func TestNew_InitializesDefaultMode(t *testing.T) {
	m, _ := CreateTestModel(t)

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "open tabs", len(m.store.OpenTabs()), 0)
	if m.store.ActiveFile() != nil {
		t.Error("no file should be active")
	}
	if !strings.Contains(m.View(), "No file selected") {
		t.Error("welcome screen should be shown")
	}
}

func TestSelectFile_OpensTab(t *testing.T) {
	m, _ := CreateTestModel(t)
	path := WriteTestFile(t, "main.go", "package main\n")

	feed(t, m, m.selectFile(path))

	tabs := m.store.OpenTabs()
	AssertModelField(t, "open tabs", len(tabs), 1)
	AssertModelField(t, "tab name", tabs[0].Name, "main.go")
	AssertModelField(t, "activeTabID", m.activeTabID, tabs[0].ID)
	AssertModelField(t, "statusMsg", m.statusMsg, "Opened main.go")

	contents, ok := m.store.ActiveContents()
	AssertModelField(t, "has contents", ok, true)
	AssertModelField(t, "contents", contents, "package main\n")

	AssertModelField(t, "recent files", len(m.store.RecentFiles()), 1)
	AssertModelField(t, "session directory", m.sessionMgr.Get().LastDirectory, filepath.Dir(path))

	view := m.View()
	if !strings.Contains(view, "1:main.go") {
		t.Errorf("tab bar should list main.go, got:\n%s", view)
	}
	if !strings.Contains(view, "package") {
		t.Errorf("viewer should show the contents, got:\n%s", view)
	}
}

func TestSelectFile_EmptyPathIsIgnored(t *testing.T) {
	m, _ := CreateTestModel(t)

	if cmd := m.selectFile(""); cmd != nil {
		t.Error("empty selection should produce no command")
	}
	if m.store.ActiveFile() != nil {
		t.Error("empty selection should not set an active file")
	}
}

func TestPicker_SelectFileOpensIt(t *testing.T) {
	m, _ := CreateTestModel(t)
	path := WriteTestFile(t, "notes.md", "# notes\n")
	m.picker.CurrentDirectory = filepath.Dir(path)

	press(t, m, "ctrl+o")
	AssertModelField(t, "mode", m.mode, ModePicker)
	if !strings.Contains(m.View(), "Open File") {
		t.Error("picker title should be rendered")
	}

	press(t, m, "enter")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	tabs := m.store.OpenTabs()
	AssertModelField(t, "open tabs", len(tabs), 1)
	AssertModelField(t, "tab name", tabs[0].Name, "notes.md")
}

func TestPicker_CloseReturnsToNormal(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(t, m, "o")
	AssertModelField(t, "mode", m.mode, ModePicker)

	press(t, m, "q")
	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "open tabs", len(m.store.OpenTabs()), 0)
}

func TestRecent_OpenSwitchesToExistingTab(t *testing.T) {
	m, _ := CreateTestModel(t)
	feed(t, m, m.selectFile(WriteTestFile(t, "notes.md", "first")))
	feed(t, m, m.selectFile(WriteTestFile(t, "main.go", "second")))

	press(t, m, "r")
	AssertModelField(t, "mode", m.mode, ModeRecent)
	AssertModelField(t, "visible recent", len(m.visibleRecent()), 2)

	press(t, m, "/", "n", "o", "t", "e")
	AssertModelField(t, "filter", m.recentFilter, "note")
	items := m.visibleRecent()
	AssertModelField(t, "filtered", len(items), 1)
	AssertModelField(t, "match", items[0].record.Name, "notes.md")

	press(t, m, "enter", "enter")

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "open tabs", len(m.store.OpenTabs()), 2)
	AssertModelField(t, "statusMsg", m.statusMsg, "Switched to notes.md")
	contents, _ := m.store.ActiveContents()
	AssertModelField(t, "contents", contents, "first")
}

func TestRecent_SwitchHighlightsShownTab(t *testing.T) {
	m, _ := CreateTestModel(t)
	feed(t, m, m.selectFile(WriteTestFile(t, "notes.md", "# title\n\n*item*\n")))
	feed(t, m, m.selectFile(WriteTestFile(t, "main.go", "package main\n")))
	AssertModelField(t, "language", m.languageLabel(), "Go")

	// newest first, so notes.md is the second entry
	press(t, m, "r", "2")

	AssertModelField(t, "statusMsg", m.statusMsg, "Switched to notes.md")
	AssertModelField(t, "active file", m.store.ActiveFile().Name, "main.go")

	want := highlight.LanguageFor("notes.md", "", "")
	AssertModelField(t, "language", m.languageLabel(), want)
	if want == "Go" {
		t.Fatalf("notes.md should not resolve to the Go lexer")
	}
	if bar := m.renderStatusBar(); !strings.Contains(bar, "notes.md") {
		t.Errorf("status bar should name the shown tab, got %q", bar)
	}
}

func TestRecent_OpenFromCacheAddsTab(t *testing.T) {
	m, _ := CreateTestModel(t)
	feed(t, m, m.selectFile(WriteTestFile(t, "notes.md", "cached")))

	press(t, m, "x")
	AssertModelField(t, "open tabs", len(m.store.OpenTabs()), 0)

	press(t, m, "r", "1")

	tabs := m.store.OpenTabs()
	AssertModelField(t, "open tabs", len(tabs), 1)
	AssertModelField(t, "statusMsg", m.statusMsg, "Opened notes.md from cache")
	AssertModelField(t, "source", m.store.ActiveFile().Source, types.SourceCache)
	AssertModelField(t, "activeTabID", m.activeTabID, tabs[0].ID)
}

func TestRecent_EmptyListShowsError(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(t, m, "r", "enter")

	AssertModelField(t, "mode", m.mode, ModeRecent)
	AssertModelField(t, "errorMsg", m.errorMsg, "No recent files")
	if !strings.Contains(m.View(), "No cached files yet") {
		t.Error("empty recent list should be explained")
	}

	press(t, m, "esc")
	AssertModelField(t, "mode", m.mode, ModeNormal)
}

func TestRecent_FilterCancelRestoresList(t *testing.T) {
	m, _ := CreateTestModel(t)
	feed(t, m, m.selectFile(WriteTestFile(t, "a.txt", "a")))
	feed(t, m, m.selectFile(WriteTestFile(t, "b.txt", "b")))

	press(t, m, "r", "/", "z", "z")
	AssertModelField(t, "filtered", len(m.visibleRecent()), 0)

	press(t, m, "esc")
	AssertModelField(t, "filtering", m.recentFiltering, false)
	AssertModelField(t, "filter", m.recentFilter, "")
	AssertModelField(t, "visible recent", len(m.visibleRecent()), 2)
	AssertModelField(t, "mode", m.mode, ModeRecent)
}

func TestRecent_NavigationWraps(t *testing.T) {
	m, _ := CreateTestModel(t)
	feed(t, m, m.selectFile(WriteTestFile(t, "a.txt", "a")))
	feed(t, m, m.selectFile(WriteTestFile(t, "b.txt", "b")))

	press(t, m, "r")
	press(t, m, "k")
	AssertModelField(t, "recentIndex", m.recentIndex, 1)
	press(t, m, "j")
	AssertModelField(t, "recentIndex", m.recentIndex, 0)
	press(t, m, "G")
	AssertModelField(t, "recentIndex", m.recentIndex, 1)
	press(t, m, "g", "g")
	AssertModelField(t, "recentIndex", m.recentIndex, 0)
}

func TestTabs_CycleSelectAndClose(t *testing.T) {
	m, _ := CreateTestModel(t)
	feed(t, m, m.selectFile(WriteTestFile(t, "a.txt", "alpha")))
	feed(t, m, m.selectFile(WriteTestFile(t, "b.txt", "beta")))

	tabs := m.store.OpenTabs()
	AssertModelField(t, "active tab", m.activeTabIndex(tabs), 1)

	press(t, m, "tab")
	AssertModelField(t, "active tab", m.activeTabIndex(tabs), 0)
	contents, _ := m.store.ActiveContents()
	AssertModelField(t, "contents", contents, "alpha")

	press(t, m, "2")
	AssertModelField(t, "active tab", m.activeTabIndex(tabs), 1)
	AssertModelField(t, "active file", m.store.ActiveFile().Name, "b.txt")

	press(t, m, "x")
	remaining := m.store.OpenTabs()
	AssertModelField(t, "open tabs", len(remaining), 1)
	AssertModelField(t, "active file", m.store.ActiveFile().Name, "a.txt")
	AssertModelField(t, "statusMsg", m.statusMsg, "Closed b.txt")

	press(t, m, "x")
	AssertModelField(t, "open tabs", len(m.store.OpenTabs()), 0)
	if m.store.ActiveFile() != nil {
		t.Error("closing the last tab should clear the active file")
	}

	press(t, m, "x")
	AssertModelField(t, "errorMsg", m.errorMsg, "No open tabs")
}

func TestCopyContents(t *testing.T) {
	m, copied := CreateTestModel(t)

	press(t, m, "c")
	AssertModelField(t, "errorMsg", m.errorMsg, "Nothing to copy")

	feed(t, m, m.selectFile(WriteTestFile(t, "main.go", "package main")))
	press(t, m, "c")

	AssertModelField(t, "copies", len(*copied), 1)
	AssertModelField(t, "copied", (*copied)[0], "package main")
	AssertModelField(t, "statusMsg", m.statusMsg, "Copied main.go to clipboard")
}

func TestViewerToggles_PersistToSession(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(t, m, "t")
	AssertModelField(t, "theme", m.renderer.Theme(), "dracula")
	AssertModelField(t, "session theme", m.sessionMgr.Get().Theme, "dracula")

	press(t, m, "n")
	AssertModelField(t, "line numbers", m.renderer.LineNumbers(), false)
	ln := m.sessionMgr.Get().LineNumbers
	if ln == nil || *ln {
		t.Errorf("session line numbers = %v, want false", ln)
	}

	press(t, m, "w")
	AssertModelField(t, "wrap", m.renderer.Wrap(), false)
	AssertModelField(t, "statusMsg", m.statusMsg, "Wrap: off")
}

func TestReadFailure_RetryReadsAgain(t *testing.T) {
	m, _ := CreateTestModel(t)
	path := WriteTestFile(t, "flaky.txt", "hello")

	cmd := m.selectFile(path)
	AssertNoError(t, os.Remove(path))
	feed(t, m, cmd)

	notice := m.store.Notice()
	if notice == nil || notice.Kind != types.NoticeReadFailed {
		t.Fatalf("notice = %+v, want read failure", notice)
	}
	AssertModelField(t, "open tabs", len(m.store.OpenTabs()), 0)
	AssertModelField(t, "active file", m.store.ActiveFile().Name, "flaky.txt")
	if view := m.View(); !strings.Contains(view, "Could not read flaky.txt") {
		t.Errorf("viewer should explain the failure, got:\n%s", view)
	}

	AssertNoError(t, os.WriteFile(path, []byte("hello again"), 0644))
	press(t, m, "R")

	if m.store.Notice() != nil {
		t.Errorf("notice should be cleared, got %+v", m.store.Notice())
	}
	AssertModelField(t, "open tabs", len(m.store.OpenTabs()), 1)
	contents, _ := m.store.ActiveContents()
	AssertModelField(t, "contents", contents, "hello again")
}

func TestRetry_NothingToRetry(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(t, m, "R")
	AssertModelField(t, "errorMsg", m.errorMsg, "Nothing to retry")
}

func TestDismissNotice(t *testing.T) {
	m, _ := CreateTestModel(t)
	path := WriteTestFile(t, "gone.txt", "x")
	cmd := m.selectFile(path)
	AssertNoError(t, os.Remove(path))
	feed(t, m, cmd)

	if m.store.Notice() == nil {
		t.Fatal("expected a notice")
	}
	press(t, m, "esc")
	if m.store.Notice() != nil {
		t.Error("esc should dismiss the notice")
	}
}

func TestStatusBar_FlagsBinaryContents(t *testing.T) {
	m, _ := CreateTestModel(t)
	feed(t, m, m.selectFile(WriteTestFile(t, "blob.bin", "ab\x00cd")))

	if !strings.Contains(m.renderStatusBar(), "binary") {
		t.Errorf("status bar should flag binary contents, got %q", m.renderStatusBar())
	}
}

func TestStatusBar_FitsWidth(t *testing.T) {
	m, _ := CreateTestModel(t)
	name := strings.Repeat("très-long-nom-", 8) + ".txt"
	feed(t, m, m.selectFile(WriteTestFile(t, name, "data")))

	for _, width := range []int{120, 60, 30, 10} {
		m.Update(tea.WindowSizeMsg{Width: width, Height: 30})
		bar := m.renderStatusBar()
		if strings.Contains(bar, "\n") {
			t.Errorf("width %d: status bar wrapped: %q", width, bar)
		}
		if got := lipgloss.Width(bar); got > width {
			t.Errorf("width %d: status bar is %d cells wide", width, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	short := "Opened a.txt"
	AssertModelField(t, "short", truncate(short, MaxStatusLength), short)

	long := "Opened " + strings.Repeat("日本語ファイル", 20) + ".txt"
	got := truncate(long, 20)
	if !utf8.ValidString(got) {
		t.Errorf("truncate split a rune: %q", got)
	}
	if w := lipgloss.Width(got); w > 20 {
		t.Errorf("truncate width = %d, want <= 20", w)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncate should end with an ellipsis, got %q", got)
	}
}

func TestHelp_ListsBindings(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(t, m, "?")
	AssertModelField(t, "mode", m.mode, ModeHelp)
	view := m.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("help title should be rendered")
	}

	press(t, m, "esc")
	AssertModelField(t, "mode", m.mode, ModeNormal)
}

func TestQuit(t *testing.T) {
	m, _ := CreateTestModel(t)

	if !press(t, m, "ctrl+c") {
		t.Error("ctrl+c should quit")
	}
	if !press(t, m, "q") {
		t.Error("q should quit in normal mode")
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := humanSize(tt.in); got != tt.want {
			t.Errorf("humanSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
