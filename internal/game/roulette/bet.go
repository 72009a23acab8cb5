package roulette

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var ErrInvalidBet = errors.New("invalid bet")

type Kind string

const (
	Straight Kind = "straight"
	Split    Kind = "split"
	Street   Kind = "street"
	Corner   Kind = "corner"
	SixLine  Kind = "sixLine"
	Column   Kind = "column"
	Dozen    Kind = "dozen"
	RedBet   Kind = "red"
	BlackBet Kind = "black"
	EvenBet  Kind = "even"
	OddBet   Kind = "odd"
	Low      Kind = "low"
	High     Kind = "high"
)

// Odds 各类注的赔率（几赔一）
var Odds = map[Kind]float64{
	Straight: 35,
	Split:    17,
	Street:   11,
	Corner:   8,
	SixLine:  5,
	Column:   2,
	Dozen:    2,
	RedBet:   1,
	BlackBet: 1,
	EvenBet:  1,
	OddBet:   1,
	Low:      1,
	High:     1,
}

var insideSize = map[Kind]int{
	Straight: 1,
	Split:    2,
	Street:   3,
	Corner:   4,
	SixLine:  6,
}

// Bet 注的描述：类别 + 号码集合（内围）或目标列/打（外围）
type Bet struct {
	Kind    Kind  `json:"kind"`
	Numbers []int `json:"numbers,omitempty"`
	Target  int   `json:"target,omitempty"`
}

// Key 规范化的文本标识，如 corner_1-2-4-5、dozen_2、red
func (b Bet) Key() string {
	if _, inside := insideSize[b.Kind]; inside {
		labels := make([]string, len(b.Numbers))
		for i, n := range b.Numbers {
			labels[i] = Label(n)
		}
		return string(b.Kind) + "_" + strings.Join(labels, "-")
	}
	if b.Kind == Column || b.Kind == Dozen {
		return string(b.Kind) + "_" + strconv.Itoa(b.Target)
	}
	return string(b.Kind)
}

// ParseBet 解析文本标识并校验台面几何
func ParseBet(key string) (Bet, error) {
	kind, arg, _ := strings.Cut(key, "_")
	b := Bet{Kind: Kind(kind)}
	switch {
	case insideSize[b.Kind] > 0:
		for _, part := range strings.Split(arg, "-") {
			n, ok := parseNumber(part)
			if !ok {
				return Bet{}, fmt.Errorf("%w: bad number %q in %q", ErrInvalidBet, part, key)
			}
			b.Numbers = append(b.Numbers, n)
		}
	case b.Kind == Column || b.Kind == Dozen:
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Bet{}, fmt.Errorf("%w: bad target in %q", ErrInvalidBet, key)
		}
		b.Target = n
	case arg != "":
		return Bet{}, fmt.Errorf("%w: %q takes no argument", ErrInvalidBet, kind)
	}
	b = b.normalize()
	if err := b.Validate(); err != nil {
		return Bet{}, err
	}
	return b, nil
}

func (b Bet) normalize() Bet {
	b.Numbers = slices.Clone(b.Numbers)
	slices.Sort(b.Numbers)
	return b
}

var zeroSplits = [][]int{{0, 1}, {0, 2}, {0, DoubleZero}, {2, DoubleZero}, {3, DoubleZero}}

// Validate 号码必须构成台面上真实存在的组合
func (b Bet) Validate() error {
	invalid := func(reason string) error {
		return fmt.Errorf("%w: %s %s", ErrInvalidBet, b.Key(), reason)
	}
	if _, ok := Odds[b.Kind]; !ok {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidBet, b.Kind)
	}

	size, inside := insideSize[b.Kind]
	if !inside {
		if len(b.Numbers) > 0 {
			return invalid("takes no numbers")
		}
		if b.Kind == Column || b.Kind == Dozen {
			if b.Target < 1 || b.Target > 3 {
				return invalid("target must be 1, 2 or 3")
			}
		} else if b.Target != 0 {
			return invalid("takes no target")
		}
		return nil
	}

	ns := b.normalize().Numbers
	if len(ns) != size {
		return invalid(fmt.Sprintf("needs %d numbers", size))
	}
	for _, n := range ns {
		if n < 0 || n > DoubleZero {
			return invalid("number out of range")
		}
	}
	a := ns[0]
	switch b.Kind {
	case Straight:
		return nil
	case Split:
		if slices.ContainsFunc(zeroSplits, func(z []int) bool { return slices.Equal(z, ns) }) {
			return nil
		}
		if a >= 1 && ns[1] <= 36 && (ns[1]-a == 3 || (ns[1]-a == 1 && a%3 != 0)) {
			return nil
		}
		return invalid("numbers are not adjacent")
	case Street:
		if a >= 1 && a%3 == 1 && slices.Equal(ns, []int{a, a + 1, a + 2}) {
			return nil
		}
		return invalid("is not a row")
	case Corner:
		if a >= 1 && a <= 32 && a%3 != 0 && slices.Equal(ns, []int{a, a + 1, a + 3, a + 4}) {
			return nil
		}
		return invalid("is not a square")
	case SixLine:
		if a >= 1 && a <= 31 && a%3 == 1 && slices.Equal(ns, []int{a, a + 1, a + 2, a + 3, a + 4, a + 5}) {
			return nil
		}
		return invalid("is not two adjacent rows")
	}
	return nil
}

// Wins 按类别与落点属性比对；高/低直接看号码本身
func (b Bet) Wins(p Pocket) bool {
	switch b.Kind {
	case Straight, Split, Street, Corner, SixLine:
		return slices.Contains(b.Numbers, p.Number)
	case Column:
		return p.Column == b.Target
	case Dozen:
		return p.Dozen == b.Target
	case RedBet:
		return p.Color == Red
	case BlackBet:
		return p.Color == Black
	case EvenBet:
		return p.Parity == Even
	case OddBet:
		return p.Parity == Odd
	case Low:
		return p.Number >= 1 && p.Number <= 18
	case High:
		return p.Number >= 19 && p.Number <= 36
	}
	return false
}
