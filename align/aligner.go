package align

import (
	"fmt"

	"github.com/pkg/errors"
)

// Result is the outcome of one semi-global alignment: the best and
// second-best scoring reference end columns found in the query's final row,
// the 1-based reference span the best alignment covers, and its CIGAR.
type Result struct {
	Best       int
	SecondBest int
	RefStart   int
	RefEnd     int
	Cigar      Cigar
}

// String renders the result in the original tool's wire format:
// "best:second_best:ref_start:ref_end:cigar".
func (r Result) String() string {
	return fmt.Sprintf("%d:%d:%d:%d:%s", r.Best, r.SecondBest, r.RefStart, r.RefEnd, r.Cigar)
}

// Align runs a semi-global alignment of query against reference: the query
// is consumed end-to-end, while leading and trailing gaps in the reference
// are free. It mirrors populate()/backtrack() from the original aligner,
// including its exact tie-break order.
func Align(cfg Config, query, reference []byte) (Result, error) {
	if len(query) == 0 || len(reference) == 0 {
		return Result{}, errors.Errorf("align: query and reference must both be non-empty")
	}
	if len(query) > MaxQueryLen {
		return Result{}, errors.Errorf("align: query length %d exceeds %d", len(query), MaxQueryLen)
	}
	if len(reference) > MaxReferenceLen {
		return Result{}, errors.Errorf("align: reference length %d exceeds %d", len(reference), MaxReferenceLen)
	}

	p := populate(cfg, query, reference)
	return backtrack(p, query, reference), nil
}

func populate(cfg Config, q, r []byte) *plane {
	qn, rn := len(q), len(r)
	p := newPlane(qn+1, rn+1)

	for row := 1; row <= qn; row++ {
		v := cfg.GapOpen + row*cfg.GapExtend
		p.set(row, 0, levelI, v, dirNone)
		p.set(row, 0, levelM, v, dirNone)
		p.set(row, 0, levelD, v, dirNone)
	}
	for col := 0; col <= rn; col++ {
		v := cfg.GapOpen + col*cfg.GapExtend
		p.set(0, col, levelI, v, dirNone)
		p.set(0, col, levelM, 0, dirNone)
		p.set(0, col, levelD, v, dirNone)
	}

	for row := 1; row <= qn; row++ {
		for col := 1; col <= rn; col++ {
			// Insertion (lower) matrix: gap in the reference, i.e. an
			// inserted query base.
			insertExt := p.get(row-1, col, levelI) + cfg.GapExtend
			insertOpen := p.get(row-1, col, levelM) + cfg.GapOpen
			if insertExt >= insertOpen {
				p.set(row, col, levelI, insertExt, dirUp)
			} else {
				p.set(row, col, levelI, insertOpen, dirDiag)
			}

			// Deletion (upper) matrix: gap in the query, i.e. a deleted
			// query base relative to the reference.
			deleteExt := p.get(row, col-1, levelD) + cfg.GapExtend
			deleteOpen := p.get(row, col-1, levelM) + cfg.GapOpen
			if deleteExt >= deleteOpen {
				p.set(row, col, levelD, deleteExt, dirLeft)
			} else {
				p.set(row, col, levelD, deleteOpen, dirDiag)
			}

			// Match/mismatch (middle) matrix.
			insertClose := p.get(row, col, levelI)
			deleteClose := p.get(row, col, levelD)
			var baseMatch int
			if q[row-1] == r[col-1] {
				baseMatch = p.get(row-1, col-1, levelM) + cfg.Match
			} else {
				baseMatch = p.get(row-1, col-1, levelM) + cfg.Mismatch
			}

			switch {
			case baseMatch >= insertClose && baseMatch >= deleteClose:
				p.set(row, col, levelM, baseMatch, dirDiag)
			case insertClose >= deleteClose:
				p.set(row, col, levelM, insertClose, dirUp)
			default:
				p.set(row, col, levelM, deleteClose, dirLeft)
			}
		}
	}

	return p
}

func backtrack(p *plane, q, r []byte) Result {
	qn, rn := len(q), len(r)
	row := qn

	// This scan deliberately does not promote the previous bestScore into
	// secondBest when a new best is found: the original only updates
	// secondBest from its own else-if branch, so secondBest is the largest
	// M-score among the columns that did not set a new best when scanned,
	// not the true second-largest value over the whole row.
	bestIdx := -1
	bestScore := minInt
	secondBest := minInt
	for col := 1; col <= rn; col++ {
		s := p.get(row, col, levelM)
		if s > bestScore {
			bestIdx = col
			bestScore = s
		} else if s > secondBest {
			secondBest = s
		}
	}

	rr, cc := row, bestIdx
	refEnd := cc
	lvl := levelM
	b := &cigarBuilder{}

	for rr > 0 && cc > 0 {
		dir := p.bt(rr, cc, lvl)

		switch dir {
		case dirDiag:
			if lvl == levelM {
				rr--
				cc--
			} else if lvl == levelI {
				rr--
			} else if lvl == levelD {
				cc--
			}
			if lvl == levelM {
				b.push(CigarMatch)
			}
			lvl = levelM

		case dirLeft:
			if lvl == levelD {
				cc--
			}
			lvl = levelD
			b.push(CigarDeletion)

		case dirUp:
			if lvl == levelI {
				rr--
			}
			lvl = levelI
			b.push(CigarInsertion)

		default:
			rr, cc = 0, 0
		}
	}

	return Result{
		Best:       bestScore,
		SecondBest: secondBest,
		RefStart:   cc + 1,
		RefEnd:     refEnd,
		Cigar:      b.cigar(),
	}
}

const minInt = -300000000
