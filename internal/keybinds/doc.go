/*
Package keybinds provides customizable keyboard binding management.

Bindings live in a Registry keyed by context and key. A key bound in a
specific context shadows the same key in the global context.

Contexts:
  - global: available everywhere (ctrl+c)
  - normal: the viewer and its tab bar
  - picker: the file picker overlay
  - recent: the recent files list
  - recent_filter: typing a fuzzy filter in the recent list
  - help: the help overlay

User overrides are read from keybinds.json in the config directory. Each
section maps an action to a comma separated key list:

	{
	  "version": "1.0",
	  "normal": {
	    "close_tab": "x,ctrl+w",
	    "open_recent": "r,ctrl+e"
	  }
	}

Listing an action replaces all of its default keys in that context.
Unknown actions and rebinding ctrl+c are rejected.

Multi-key sequences: "g" is bound to go_to_top_prepare, and MatchMultiKey
waits for the second key of "gg".
*/
package keybinds
