package board

import (
	"errors"
	"testing"
)

func TestStartPositionSFEN(t *testing.T) {
	pos := StartPosition()
	if got := pos.BoardSFEN(); got != StartSFEN {
		t.Errorf("BoardSFEN() = %q, want %q", got, StartSFEN)
	}
	if got := pos.SFEN(); got != StartSFEN+" -" {
		t.Errorf("SFEN() = %q", got)
	}

	parsed, err := ParseSFEN(StartSFEN)
	if err != nil {
		t.Fatalf("ParseSFEN error: %v", err)
	}
	if parsed.SFEN() != pos.SFEN() {
		t.Errorf("parsed start position differs: %q", parsed.SFEN())
	}

	kw, err := ParseSFEN(StartKeyword)
	if err != nil {
		t.Fatalf("ParseSFEN(startpos) error: %v", err)
	}
	if kw.SFEN() != pos.SFEN() {
		t.Error("startpos keyword differs from StartPosition")
	}
	if err := pos.Validate(); err != nil {
		t.Errorf("start position invalid: %v", err)
	}
}

func TestSFENRoundTrip(t *testing.T) {
	tests := []string{
		"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL -",
		"4k4/9/9/9/4+R4/9/9/9/4K4 2Pb",
		"l7l/9/9/9/9/9/9/9/+p+l+n+s1+BKs1 RG10p",
	}
	for _, s := range tests {
		pos, err := ParseSFEN(s)
		if err != nil {
			t.Fatalf("ParseSFEN(%q) error: %v", s, err)
		}
		if pos.SFEN() != s {
			t.Errorf("round trip %q -> %q", s, pos.SFEN())
		}
		if err := pos.Validate(); err != nil {
			t.Errorf("ParseSFEN(%q) produced invalid position: %v", s, err)
		}
	}
}

func TestSFENCoordinates(t *testing.T) {
	pos, err := ParseSFEN("4k4/9/9/9/9/9/9/9/R3K4 P")
	if err != nil {
		t.Fatalf("ParseSFEN error: %v", err)
	}
	if pc := pos.PieceAt(NewSquare(1, 1)); pc != NewPiece(Rook, Black) {
		t.Errorf("square 1a = %v, want black rook", pc)
	}
	if pc := pos.PieceAt(NewSquare(5, 9)); pc != NewPiece(King, White) {
		t.Errorf("square 5i = %v, want white king", pc)
	}
	if pos.Hand.Count(Black, Pawn) != 1 {
		t.Errorf("black pawns in hand = %d, want 1", pos.Hand.Count(Black, Pawn))
	}
}

func TestParseSFENErrors(t *testing.T) {
	invalid := []string{
		"",
		"9/9/9",
		"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSN",
		"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNLL",
		"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSG+KGSNL",
		"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSN+",
		"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGXGSNL",
		"9/9/9/9/9/9/9/9/9 2",
		"9/9/9/9/9/9/9/9/9 0P",
		"9/9/9/9/9/9/9/9/9 Q",
		"9/9/9/9/9/9/9/9/9 - extra",
		"startpos P",
	}
	for _, s := range invalid {
		if _, err := ParseSFEN(s); !errors.Is(err, ErrInvalidSFEN) {
			t.Errorf("ParseSFEN(%q) error = %v, want ErrInvalidSFEN", s, err)
		}
	}
}
