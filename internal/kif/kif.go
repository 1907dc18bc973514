// Package kif reads KIF game records and replays them as engine games.
package kif

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/game"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

var (
	// ErrInvalidRecord is returned for malformed KIF text.
	ErrInvalidRecord = errors.New("invalid kif record")
	// ErrUnsupportedStart is returned for records that do not start from the even position.
	ErrUnsupportedStart = errors.New("unsupported kif starting position")
)

var (
	moveLineRe   = regexp.MustCompile(`^\s*(\d+)\s+(\S+)`)
	fromSquareRe = regexp.MustCompile(`\((\d)(\d)\)`)
)

// Square is a KIF coordinate: file counted from Black's right, rank from White's side.
type Square struct {
	File int
	Rank int
}

// Board converts a KIF coordinate to the engine's square.
func (s Square) Board() board.Square {
	return board.NewSquare(10-s.File, 10-s.Rank)
}

// Move is one parsed move line.
type Move struct {
	Number  int
	Text    string
	To      Square
	From    Square // zero for drops
	Piece   board.PieceType
	Drop    bool
	Promote bool
}

// Record is a parsed KIF game.
type Record struct {
	Headers  map[string]string
	Moves    []Move
	Terminal string // closing word such as 投了, empty if none
	EndPly   int    // move number of the terminal line
}

// Decode converts raw KIF bytes to text, accepting UTF-8 (with or
// without BOM) and Shift-JIS.
func Decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), japanese.ShiftJIS.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if !utf8.Valid(decoded) {
		return "", fmt.Errorf("%w: not UTF-8 or Shift-JIS", ErrInvalidRecord)
	}
	return string(decoded), nil
}

// Parse reads a KIF record from r.
func Parse(r io.Reader) (*Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text, err := Decode(data)
	if err != nil {
		return nil, err
	}

	rec := &Record{Headers: make(map[string]string)}
	var prev *Square

	sc := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "#") || strings.HasPrefix(trim, "*") {
			continue
		}

		match := moveLineRe.FindStringSubmatch(line)
		if match == nil {
			if len(rec.Moves) == 0 {
				parseHeader(rec.Headers, trim)
			}
			continue
		}

		number, _ := strconv.Atoi(match[1])
		token := match[2]
		// "同　歩(77)" may use an ASCII space after 同.
		if token == "同" {
			if rest := strings.Fields(line); len(rest) >= 3 {
				token += rest[2]
			}
		}

		if isTerminal(token) {
			rec.Terminal = token
			rec.EndPly = number
			break
		}

		mv, err := parseMove(token, prev)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidRecord, lineNo, err)
		}
		mv.Number = number
		rec.Moves = append(rec.Moves, mv)
		last := mv.To
		prev = &last
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	// The move before a foul is illegal and cannot be replayed.
	if rec.Terminal == "反則勝ち" || rec.Terminal == "反則負け" {
		if len(rec.Moves) > 0 {
			rec.Moves = rec.Moves[:len(rec.Moves)-1]
		}
	}
	return rec, nil
}

func parseHeader(headers map[string]string, line string) {
	for _, sep := range []string{"：", ":"} {
		if key, value, ok := strings.Cut(line, sep); ok {
			headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
			return
		}
	}
}

func isTerminal(token string) bool {
	switch token {
	case "投了", "中断", "持将棋", "千日手", "詰み", "切れ負け", "反則勝ち", "反則負け", "入玉勝ち", "勝ち宣言":
		return true
	}
	return false
}

func parseMove(token string, prev *Square) (Move, error) {
	mv := Move{Text: token}
	work := token

	if rest, ok := strings.CutPrefix(work, "同"); ok {
		if prev == nil {
			return mv, errors.New("same-square move without previous destination")
		}
		mv.To = *prev
		work = strings.TrimLeft(rest, " 　")
	} else {
		runes := []rune(work)
		if len(runes) < 2 {
			return mv, fmt.Errorf("invalid move token %q", token)
		}
		file, ok := parseFileRune(runes[0])
		if !ok {
			return mv, fmt.Errorf("invalid destination file in %q", token)
		}
		rank, ok := parseRankRune(runes[1])
		if !ok {
			return mv, fmt.Errorf("invalid destination rank in %q", token)
		}
		mv.To = Square{File: file, Rank: rank}
		work = string(runes[2:])
	}

	if m := fromSquareRe.FindStringSubmatch(work); m != nil {
		mv.From = Square{File: int(m[1][0] - '0'), Rank: int(m[2][0] - '0')}
		if mv.From.File < 1 || mv.From.Rank < 1 {
			return mv, fmt.Errorf("invalid origin in %q", token)
		}
		work = fromSquareRe.ReplaceAllString(work, "")
	}

	pt, rest, ok := parsePiece(work)
	if !ok {
		return mv, fmt.Errorf("unknown piece in %q", token)
	}
	mv.Piece = pt

	switch rest {
	case "":
	case "成":
		mv.Promote = true
	case "不成":
	case "打":
		mv.Drop = true
	default:
		return mv, fmt.Errorf("unexpected %q in %q", rest, token)
	}

	if mv.Drop {
		if pt.IsPromoted() || mv.From != (Square{}) {
			return mv, fmt.Errorf("invalid drop %q", token)
		}
		return mv, nil
	}
	if mv.From == (Square{}) {
		return mv, fmt.Errorf("missing origin in %q", token)
	}
	return mv, nil
}

var pieceNames = []struct {
	name string
	pt   board.PieceType
}{
	{"成銀", board.ProSilver},
	{"成桂", board.ProKnight},
	{"成香", board.ProLance},
	{"全", board.ProSilver},
	{"圭", board.ProKnight},
	{"杏", board.ProLance},
	{"と", board.ProPawn},
	{"馬", board.Horse},
	{"龍", board.Dragon},
	{"竜", board.Dragon},
	{"王", board.King},
	{"玉", board.King},
	{"飛", board.Rook},
	{"角", board.Bishop},
	{"金", board.Gold},
	{"銀", board.Silver},
	{"桂", board.Knight},
	{"香", board.Lance},
	{"歩", board.Pawn},
}

func parsePiece(text string) (board.PieceType, string, bool) {
	for _, def := range pieceNames {
		if rest, ok := strings.CutPrefix(text, def.name); ok {
			return def.pt, rest, true
		}
	}
	return board.NoPieceType, "", false
}

func parseFileRune(r rune) (int, bool) {
	if r >= '1' && r <= '9' {
		return int(r - '0'), true
	}
	if r >= '１' && r <= '９' {
		return int(r-'１') + 1, true
	}
	return 0, false
}

func parseRankRune(r rune) (int, bool) {
	if i := strings.IndexRune("一二三四五六七八九", r); i >= 0 {
		return utf8.RuneCountInString("一二三四五六七八九"[:i]) + 1, true
	}
	if r >= '1' && r <= '9' {
		return int(r - '0'), true
	}
	return 0, false
}

// Winner returns the side the terminal word credits, NoColor when the
// record ends without a decision.
func (rec *Record) Winner() board.Color {
	// The side to move on the terminal line is Black on odd move numbers.
	mover := board.Black
	if rec.EndPly%2 == 0 {
		mover = board.White
	}
	switch rec.Terminal {
	case "投了", "切れ負け", "反則負け", "詰み":
		return mover.Other()
	case "反則勝ち", "入玉勝ち", "勝ち宣言":
		return mover
	}
	return board.NoColor
}

// Replay plays the record from the starting position and returns the
// game together with the engine moves in order.
func (rec *Record) Replay() (*game.Game, []board.Move, error) {
	if h, ok := rec.Headers["手合割"]; ok && h != "平手" {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedStart, h)
	}

	g := game.New()
	moves := make([]board.Move, 0, len(rec.Moves))
	for _, km := range rec.Moves {
		m, err := km.resolve(g)
		if err != nil {
			return nil, nil, fmt.Errorf("move %d (%s): %w", km.Number, km.Text, err)
		}
		if err := g.ApplyMove(m); err != nil {
			return nil, nil, fmt.Errorf("move %d (%s): %w", km.Number, km.Text, err)
		}
		moves = append(moves, m)
	}
	return g, moves, nil
}

// resolve converts the KIF move to an engine move for the side to move in g
// and checks it against the generated moves.
func (km Move) resolve(g *game.Game) (board.Move, error) {
	to := km.To.Board()

	var m board.Move
	if km.Drop {
		m = board.NewDrop(board.NewPiece(km.Piece, g.Turn), to)
	} else {
		from := km.From.Board()
		pc := g.Position.PieceAt(from)
		if pc == board.NoPiece || pc.Color() != g.Turn {
			return board.NoMove, fmt.Errorf("%w: no piece of side %s on %s", ErrInvalidRecord, g.Turn, from)
		}
		if pc.Type() != km.Piece {
			return board.NoMove, fmt.Errorf("%w: expected %s on %s, found %s", ErrInvalidRecord, km.Piece, from, pc.Type())
		}
		m = board.NewMove(from, to, km.Promote)
	}

	if !g.Playable(m) {
		return board.NoMove, fmt.Errorf("%w: %s is not playable", ErrInvalidRecord, m)
	}
	return m, nil
}
