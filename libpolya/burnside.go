package libpolya

import (
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/polyasystems/gopolya/gopolya"
)

// CountColorings returns the number of orbits of colorings meeting spec under G (Burnside's lemma).
//
// For each element, the colorings it fixes are those constant on each of its cycles, so the fixed count
// is the number of ways to hand whole cycles to colors that exactly exhaust every color's budget.
// The sum over G must divide evenly by |G|; if it doesn't, ErrNonIntegralQuotient is returned.
func CountColorings(spec gopolya.ColorSpec, G gopolya.PermutationGroup) (*big.Int, error) {
	if G == nil {
		return nil, gopolya.ErrEmptyGroup
	}
	if err := spec.Validate(G.N()); err != nil {
		return nil, err
	}
	order := G.Order()
	if order == 0 {
		return nil, gopolya.ErrEmptyGroup
	}

	// Conjugate elements share a cycle type and so a fixed count.
	byType := make(map[string]*big.Int)
	sum := new(big.Int)
	for i := 0; i < order; i++ {
		lens := G.Cycles(i).CycleType()
		key := cycleTypeKey(lens)
		fixed := byType[key]
		if fixed == nil {
			fixed = FixedColorings(spec, lens)
			byType[key] = fixed
		}
		sum.Add(sum, fixed)
	}

	return exactQuotient(sum, order)
}

// FixedColorings returns the number of colorings meeting spec that are constant on each of the given cycles.
//
// cycleLengths is best given in descending order since long cycles exhaust budgets soonest.
func FixedColorings(spec gopolya.ColorSpec, cycleLengths []int) *big.Int {
	dp := fixedCounter{
		lens:   cycleLengths,
		budget: spec.Budget(),
		memo:   make(map[string]*big.Int),
	}
	return new(big.Int).Set(dp.count(0))
}

type fixedCounter struct {
	lens   []int
	budget []int
	memo   map[string]*big.Int
	keyBuf []byte
}

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// count returns the number of ways to assign cycles idx.. given the remaining budget.
func (dp *fixedCounter) count(idx int) *big.Int {
	if idx == len(dp.lens) {
		for _, b := range dp.budget {
			if b != 0 {
				return bigZero
			}
		}
		return bigOne
	}

	dp.keyBuf = append(dp.keyBuf[:0], byte(idx))
	for _, b := range dp.budget {
		dp.keyBuf = append(dp.keyBuf, byte(b))
	}
	key := string(dp.keyBuf)
	if ways, exists := dp.memo[key]; exists {
		return ways
	}

	ways := new(big.Int)
	L := dp.lens[idx]
	for ci, b := range dp.budget {
		if b < L {
			continue
		}
		dp.budget[ci] -= L
		ways.Add(ways, dp.count(idx+1))
		dp.budget[ci] += L
	}

	dp.memo[key] = ways
	return ways
}

// CountUnconstrained returns the number of orbits of colorings that use any of numColors colors freely,
// i.e. (1/|G|) Σ numColors^cycles(g).
func CountUnconstrained(numColors int, G gopolya.PermutationGroup) (*big.Int, error) {
	if numColors < 1 || numColors > gopolya.MaxColors {
		return nil, errors.Wrapf(gopolya.ErrBadColorSpec, "number of colors %d is out of range", numColors)
	}
	if G == nil || G.Order() == 0 {
		return nil, gopolya.ErrEmptyGroup
	}

	c := big.NewInt(int64(numColors))
	sum := new(big.Int)
	term := new(big.Int)
	for i := 0; i < G.Order(); i++ {
		term.Exp(c, big.NewInt(int64(len(G.Cycles(i)))), nil)
		sum.Add(sum, term)
	}
	return exactQuotient(sum, G.Order())
}

func exactQuotient(sum *big.Int, order int) (*big.Int, error) {
	quo, rem := new(big.Int).QuoRem(sum, big.NewInt(int64(order)), new(big.Int))
	if rem.Sign() != 0 {
		return nil, errors.Wrapf(gopolya.ErrNonIntegralQuotient, "%v mod %d = %v", sum, order, rem)
	}
	return quo, nil
}

func cycleTypeKey(lens []int) string {
	key := make([]byte, len(lens))
	for i, L := range lens {
		key[i] = byte(L)
	}
	return string(key)
}

// CyclePower is a factor x<Len>^<Exp> of a cycle index monomial.
type CyclePower struct {
	Len int
	Exp int
}

// CycleIndexTerm is Coeff elements sharing one cycle type.
type CycleIndexTerm struct {
	Coeff  int
	Powers []CyclePower // ascending by Len
}

// NumCycles returns the number of cycles in this term's cycle type.
func (term CycleIndexTerm) NumCycles() int {
	N := 0
	for _, p := range term.Powers {
		N += p.Exp
	}
	return N
}

// CycleIndex is the cycle index polynomial of a permutation group: (1/Order) Σ Coeff * Π x<Len>^<Exp>.
type CycleIndex struct {
	Order int
	Terms []CycleIndexTerm
}

// CycleIndexOf tallies the cycle types of G.
//
// Terms are ordered by number of cycles (descending), then by longest cycle (ascending), so the identity comes first.
func CycleIndexOf(G gopolya.PermutationGroup) CycleIndex {
	tally := make(map[string]*CycleIndexTerm)
	var terms []*CycleIndexTerm

	for i := 0; i < G.Order(); i++ {
		lens := G.Cycles(i).CycleType()
		key := cycleTypeKey(lens)
		term := tally[key]
		if term == nil {
			term = &CycleIndexTerm{}
			for j := len(lens) - 1; j >= 0; j-- {
				L := lens[j]
				if k := len(term.Powers); k > 0 && term.Powers[k-1].Len == L {
					term.Powers[k-1].Exp++
				} else {
					term.Powers = append(term.Powers, CyclePower{Len: L, Exp: 1})
				}
			}
			tally[key] = term
			terms = append(terms, term)
		}
		term.Coeff++
	}

	sort.Slice(terms, func(i, j int) bool {
		ti, tj := terms[i], terms[j]
		if ni, nj := ti.NumCycles(), tj.NumCycles(); ni != nj {
			return ni > nj
		}
		li, lj := ti.Powers[len(ti.Powers)-1].Len, tj.Powers[len(tj.Powers)-1].Len
		if li != lj {
			return li < lj
		}
		return ti.String() < tj.String()
	})

	ci := CycleIndex{
		Order: G.Order(),
		Terms: make([]CycleIndexTerm, len(terms)),
	}
	for i, term := range terms {
		ci.Terms[i] = *term
	}
	return ci
}

// Evaluate substitutes numColors for every variable, yielding the number of unconstrained colorings up to symmetry.
func (ci CycleIndex) Evaluate(numColors int) (*big.Int, error) {
	if ci.Order == 0 {
		return nil, gopolya.ErrEmptyGroup
	}
	c := big.NewInt(int64(numColors))
	sum := new(big.Int)
	for _, term := range ci.Terms {
		t := new(big.Int).Exp(c, big.NewInt(int64(term.NumCycles())), nil)
		sum.Add(sum, t.Mul(t, big.NewInt(int64(term.Coeff))))
	}
	return exactQuotient(sum, ci.Order)
}

// String returns a monomial such as "15 x2^6" or "x1^2 x5^2".
func (term CycleIndexTerm) String() string {
	b := strings.Builder{}
	if term.Coeff != 1 {
		b.WriteString(strconv.Itoa(term.Coeff))
		b.WriteByte(' ')
	}
	for i, p := range term.Powers {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('x')
		b.WriteString(strconv.Itoa(p.Len))
		if p.Exp != 1 {
			b.WriteByte('^')
			b.WriteString(strconv.Itoa(p.Exp))
		}
	}
	return b.String()
}

// String returns the polynomial, e.g. "(x1^12 + 15 x2^6 + 20 x3^4 + 24 x1^2 x5^2)/60".
func (ci CycleIndex) String() string {
	b := strings.Builder{}
	b.WriteByte('(')
	for i, term := range ci.Terms {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(term.String())
	}
	b.WriteString(")/")
	b.WriteString(strconv.Itoa(ci.Order))
	return b.String()
}
