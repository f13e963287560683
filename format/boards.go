package format

import "strings"

var (
	mathBoards        = map[string]bool{"sci": true, "g": true, "biz": true}
	programmingBoards = map[string]bool{"g": true, "sci": true, "diy": true, "wsr": true, "po": true}
)

// IsMathBoard reports whether math is rendered on board.
func IsMathBoard(board string) bool {
	return mathBoards[strings.ToLower(board)]
}

// IsProgrammingBoard reports whether code blocks are highlighted on board.
func IsProgrammingBoard(board string) bool {
	return programmingBoards[strings.ToLower(board)]
}
