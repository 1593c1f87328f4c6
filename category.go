package spritepack

import "strings"

// Category derives a category label from a folder name by stripping any
// numeric ordering prefix: "01-body" and "1_body" both become "body". A
// folder with nothing left after the prefix keeps its original name.
func Category(folder string) string {
	trimmed := strings.TrimLeft(folder, "0123456789")
	trimmed = strings.TrimLeft(trimmed, "-_ ")
	if trimmed == "" {
		return folder
	}
	return trimmed
}
