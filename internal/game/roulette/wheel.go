package roulette

import "strconv"

// DoubleZero 00 在内部用 37 表示，排在 36 之后
const DoubleZero = 37

type Color string

const (
	Green Color = "green"
	Red   Color = "red"
	Black Color = "black"
)

type Parity string

const (
	Even Parity = "even"
	Odd  Parity = "odd"
)

// Pocket 轮盘上的一个格子及其派生属性；0/00 的列、打、奇偶都为空
type Pocket struct {
	Label  string `json:"label"`
	Number int    `json:"number"`
	Color  Color  `json:"color"`
	Column int    `json:"column,omitempty"`
	Dozen  int    `json:"dozen,omitempty"`
	Parity Parity `json:"parity,omitempty"`
}

// 美式轮盘物理顺序
var wheelOrder = []string{
	"0", "28", "9", "26", "30", "11", "7", "20", "32", "17", "5", "22", "34", "15", "3", "24", "36", "13", "1",
	"00", "27", "10", "25", "29", "12", "8", "19", "31", "18", "6", "21", "33", "16", "4", "23", "35", "14", "2",
}

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// Wheel 38 个格子，下标即动画使用的位置
var Wheel = buildWheel()

func buildWheel() []Pocket {
	w := make([]Pocket, len(wheelOrder))
	for i, label := range wheelOrder {
		n, _ := parseNumber(label)
		w[i] = pocketOf(n)
	}
	return w
}

func pocketOf(n int) Pocket {
	p := Pocket{Label: Label(n), Number: n, Color: Green}
	if n < 1 || n > 36 {
		return p
	}
	p.Color = Black
	if redNumbers[n] {
		p.Color = Red
	}
	switch n % 3 {
	case 1:
		p.Column = 1
	case 2:
		p.Column = 2
	default:
		p.Column = 3
	}
	p.Dozen = (n-1)/12 + 1
	p.Parity = Odd
	if n%2 == 0 {
		p.Parity = Even
	}
	return p
}

// Label 数字对应的显示文本
func Label(n int) string {
	if n == DoubleZero {
		return "00"
	}
	return strconv.Itoa(n)
}

func parseNumber(s string) (int, bool) {
	if s == "00" {
		return DoubleZero, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 36 {
		return 0, false
	}
	return n, true
}

// IndexOf 返回数字在轮盘上的位置，未找到返回 -1
func IndexOf(n int) int {
	for i, p := range Wheel {
		if p.Number == n {
			return i
		}
	}
	return -1
}
