package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartSFEN is the board field of the starting position.
const StartSFEN = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL"

// StartKeyword selects the starting position in text input.
const StartKeyword = "startpos"

// ErrInvalidSFEN is returned for malformed position text.
var ErrInvalidSFEN = errors.New("invalid sfen")

// ParseSFEN parses "startpos" or "<board> [<hand>]".
// The board lists row 9 first; within a row columns run 1 to 9.
func ParseSFEN(sfen string) (*Position, error) {
	fields := strings.Fields(sfen)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidSFEN)
	}
	if len(fields) > 2 {
		return nil, fmt.Errorf("%w: expected board and hand, got %d fields", ErrInvalidSFEN, len(fields))
	}

	if fields[0] == StartKeyword {
		if len(fields) != 1 {
			return nil, fmt.Errorf("%w: %s takes no hand", ErrInvalidSFEN, StartKeyword)
		}
		return StartPosition(), nil
	}

	pos := NewPosition()
	if err := pos.parseBoard(fields[0]); err != nil {
		return nil, err
	}
	if len(fields) == 2 {
		if err := pos.parseHand(fields[1]); err != nil {
			return nil, err
		}
	}
	return pos, nil
}

func (p *Position) parseBoard(s string) error {
	rows := strings.Split(s, "/")
	if len(rows) != 9 {
		return fmt.Errorf("%w: expected 9 rows, got %d", ErrInvalidSFEN, len(rows))
	}

	for i, rowStr := range rows {
		row := 9 - i
		col := 1
		promoted := false
		for j := 0; j < len(rowStr); j++ {
			ch := rowStr[j]
			switch {
			case ch == '+':
				if promoted {
					return fmt.Errorf("%w: double '+' in row %d", ErrInvalidSFEN, row)
				}
				promoted = true
				continue
			case ch >= '1' && ch <= '9':
				if promoted {
					return fmt.Errorf("%w: '+' before digit in row %d", ErrInvalidSFEN, row)
				}
				col += int(ch - '0')
			default:
				pc := PieceFromChar(ch)
				if pc == NoPiece {
					return fmt.Errorf("%w: invalid piece %q", ErrInvalidSFEN, ch)
				}
				pt := pc.Type()
				if promoted {
					if !pt.CanPromote() {
						return fmt.Errorf("%w: %s cannot be promoted", ErrInvalidSFEN, pt)
					}
					pt = pt.Promote()
					promoted = false
				}
				if col > 9 {
					return fmt.Errorf("%w: row %d too long", ErrInvalidSFEN, row)
				}
				p.Deploy(NewSquare(col, row), pt, pc.Color())
				col++
			}
			if col > 10 {
				return fmt.Errorf("%w: row %d too long", ErrInvalidSFEN, row)
			}
		}
		if promoted {
			return fmt.Errorf("%w: dangling '+' in row %d", ErrInvalidSFEN, row)
		}
		if col != 10 {
			return fmt.Errorf("%w: row %d has %d squares", ErrInvalidSFEN, row, col-1)
		}
	}
	return nil
}

func (p *Position) parseHand(s string) error {
	if s == "-" {
		return nil
	}

	i := 0
	for i < len(s) {
		j := i
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		n := 1
		if j > i {
			v, err := strconv.Atoi(s[i:j])
			if err != nil || v < 1 || v > 18 {
				return fmt.Errorf("%w: bad hand count %q", ErrInvalidSFEN, s[i:j])
			}
			n = v
		}
		if j >= len(s) {
			return fmt.Errorf("%w: hand count without piece", ErrInvalidSFEN)
		}
		pc := PieceFromChar(s[j])
		if pc == NoPiece {
			return fmt.Errorf("%w: invalid hand piece %q", ErrInvalidSFEN, s[j])
		}
		p.Hand.AddN(pc.Color(), pc.Type(), n)
		i = j + 1
	}
	return nil
}

// BoardSFEN returns the board field of the position.
func (p *Position) BoardSFEN() string {
	var sb strings.Builder

	for row := 9; row >= 1; row-- {
		empty := 0
		for col := 1; col <= 9; col++ {
			pc := p.PieceAt(NewSquare(col, row))
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row > 1 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}

// SFEN returns "<board> <hand>".
func (p *Position) SFEN() string {
	return p.BoardSFEN() + " " + p.Hand.String()
}
