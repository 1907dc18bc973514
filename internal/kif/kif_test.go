package kif

import (
	"errors"
	"strings"
	"testing"

	"github.com/hailam/shogiplay/internal/board"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

const sampleKIF = `# ---- Kifu for Windows ----
開始日時：2024/01/02 10:00:00
手合割：平手
先手：Sente
後手：Gote
手数----指手---------消費時間--
   1 ７六歩(77)   ( 0:01/00:00:01)
   2 ３四歩(33)   ( 0:02/00:00:02)
   3 ２二角成(88)   ( 0:03/00:00:04)
*comment lines are skipped
   4 同　銀(31)   ( 0:01/00:00:03)
   5 ５五角打   ( 0:05/00:00:09)
   6 投了   ( 0:10/00:00:13)
`

func TestParseHeadersAndMoves(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleKIF))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if rec.Headers["先手"] != "Sente" || rec.Headers["後手"] != "Gote" {
		t.Errorf("players = %q/%q", rec.Headers["先手"], rec.Headers["後手"])
	}
	if rec.Headers["手合割"] != "平手" {
		t.Errorf("handicap = %q", rec.Headers["手合割"])
	}
	if len(rec.Moves) != 5 {
		t.Fatalf("moves = %d, want 5", len(rec.Moves))
	}
	if rec.Terminal != "投了" || rec.EndPly != 6 {
		t.Errorf("terminal = %q at %d", rec.Terminal, rec.EndPly)
	}

	same := rec.Moves[3]
	if same.To != (Square{File: 2, Rank: 2}) || same.From != (Square{File: 3, Rank: 1}) || same.Piece != board.Silver {
		t.Errorf("same-square move = %+v", same)
	}
	if !rec.Moves[2].Promote || rec.Moves[2].Piece != board.Bishop {
		t.Errorf("move 3 = %+v, want promoting bishop", rec.Moves[2])
	}
	if !rec.Moves[4].Drop || rec.Moves[4].From != (Square{}) {
		t.Errorf("move 5 = %+v, want drop", rec.Moves[4])
	}
}

func TestReplay(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleKIF))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g, moves, err := rec.Replay()
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}

	want := []string{"3c3d", "7g7f", "2b8h+", "7i8h", "B*5e"}
	if len(moves) != len(want) {
		t.Fatalf("moves = %v, want %v", moves, want)
	}
	for i, m := range moves {
		if m.String() != want[i] {
			t.Errorf("move %d = %s, want %s", i+1, m, want[i])
		}
	}

	if g.Ply != 6 || g.Turn != board.White {
		t.Errorf("ply %d turn %s, want 6 w", g.Ply, g.Turn)
	}
	if got := g.Position.Hand.String(); got != "b" {
		t.Errorf("hand = %q, want %q", got, "b")
	}
	if got := g.Position.PieceAt(board.NewSquare(5, 5)); got != board.NewPiece(board.Bishop, board.Black) {
		t.Errorf("5e = %s, want B", got)
	}
	if rec.Winner() != board.Black {
		t.Errorf("winner = %s, want b", rec.Winner())
	}
}

func TestParseShiftJIS(t *testing.T) {
	sjis, _, err := transform.String(japanese.ShiftJIS.NewEncoder(), sampleKIF)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	rec, err := Parse(strings.NewReader(sjis))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rec.Moves) != 5 || rec.Headers["先手"] != "Sente" {
		t.Errorf("moves = %d, sente = %q", len(rec.Moves), rec.Headers["先手"])
	}
}

func TestDecodeStripsBOM(t *testing.T) {
	text, err := Decode([]byte("\xEF\xBB\xBF手合割：平手"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if text != "手合割：平手" {
		t.Errorf("text = %q", text)
	}
}

func TestParseMoveTokens(t *testing.T) {
	prev := &Square{File: 5, Rank: 5}
	tests := []struct {
		token string
		want  Move
	}{
		{"７六歩(77)", Move{To: Square{7, 6}, From: Square{7, 7}, Piece: board.Pawn}},
		{"2六歩(27)", Move{To: Square{2, 6}, From: Square{2, 7}, Piece: board.Pawn}},
		{"２三歩成(24)", Move{To: Square{2, 3}, From: Square{2, 4}, Piece: board.Pawn, Promote: true}},
		{"２三銀不成(34)", Move{To: Square{2, 3}, From: Square{3, 4}, Piece: board.Silver}},
		{"４四成銀(45)", Move{To: Square{4, 4}, From: Square{4, 5}, Piece: board.ProSilver}},
		{"１二と(13)", Move{To: Square{1, 2}, From: Square{1, 3}, Piece: board.ProPawn}},
		{"５一竜(59)", Move{To: Square{5, 1}, From: Square{5, 9}, Piece: board.Dragon}},
		{"同　馬(66)", Move{To: Square{5, 5}, From: Square{6, 6}, Piece: board.Horse}},
		{"同玉(46)", Move{To: Square{5, 5}, From: Square{4, 6}, Piece: board.King}},
		{"３三桂打", Move{To: Square{3, 3}, Piece: board.Knight, Drop: true}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := parseMove(tt.token, prev)
			if err != nil {
				t.Fatalf("parseMove: %v", err)
			}
			tt.want.Text = tt.token
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseMoveErrors(t *testing.T) {
	for _, token := range []string{"", "７", "０六歩(77)", "７十歩(77)", "７六象(77)", "７六歩", "７六と打", "７六歩打(77)", "７六歩(77)右"} {
		if _, err := parseMove(token, nil); err == nil {
			t.Errorf("parseMove(%q) succeeded", token)
		}
	}
	if _, err := parseMove("同　歩(77)", nil); err == nil {
		t.Error("same-square move without previous succeeded")
	}
}

func TestParseInvalidRecord(t *testing.T) {
	_, err := Parse(strings.NewReader("   1 同　歩(77)\n"))
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("err = %v, want ErrInvalidRecord", err)
	}
}

func TestReplayErrors(t *testing.T) {
	tests := []struct {
		name string
		kif  string
		want error
	}{
		{"handicap", "手合割：香落ち\n   1 ３四歩(33)\n", ErrUnsupportedStart},
		{"unreachable", "   1 ７四歩(77)\n", ErrInvalidRecord},
		{"wrong piece", "   1 ７六香(77)\n", ErrInvalidRecord},
		{"wrong side", "   1 ３四歩(33)\n", ErrInvalidRecord},
		{"empty hand", "   1 ５五角打\n", ErrInvalidRecord},
		{"promote outside zone", "   1 ７六歩成(77)\n", ErrInvalidRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Parse(strings.NewReader(tt.kif))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if _, _, err := rec.Replay(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFoulDropsLastMove(t *testing.T) {
	kif := "   1 ７六歩(77)\n   2 ３四歩(33)\n   3 反則負け\n"
	rec, err := Parse(strings.NewReader(kif))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rec.Moves) != 1 {
		t.Errorf("moves = %d, want 1", len(rec.Moves))
	}
	// Black loses by foul on move 3.
	if rec.Winner() != board.White {
		t.Errorf("winner = %s, want w", rec.Winner())
	}
}

func TestWinner(t *testing.T) {
	tests := []struct {
		terminal string
		endPly   int
		want     board.Color
	}{
		{"投了", 7, board.White},
		{"投了", 8, board.Black},
		{"詰み", 10, board.Black},
		{"入玉勝ち", 9, board.Black},
		{"千日手", 9, board.NoColor},
		{"中断", 4, board.NoColor},
		{"", 0, board.NoColor},
	}
	for _, tt := range tests {
		rec := &Record{Terminal: tt.terminal, EndPly: tt.endPly}
		if got := rec.Winner(); got != tt.want {
			t.Errorf("%s at %d: winner = %s, want %s", tt.terminal, tt.endPly, got, tt.want)
		}
	}
}
