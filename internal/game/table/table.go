package table

import "fmt"

// Category 提示日志分类
type Category string

const (
	CatAction   Category = "action"
	CatGame     Category = "game"
	CatState    Category = "state"
	CatInfo     Category = "info"
	CatDecision Category = "decision"
	CatPayout   Category = "payout"
	CatError    Category = "error"
)

// Entry 附在快照上的提示，不作为错误返回给调用方
type Entry struct {
	Category Category `json:"category"`
	Message  string   `json:"message"`
}

// Journal 单次动作产生的提示
type Journal []Entry

func (j *Journal) Add(cat Category, format string, args ...any) {
	*j = append(*j, Entry{Category: cat, Message: fmt.Sprintf(format, args...)})
}

// Rejected 是否包含 error 或 state 类提示
func (j Journal) Rejected() bool {
	for _, e := range j {
		if e.Category == CatError || e.Category == CatState {
			return true
		}
	}
	return false
}

// Ledger 一局内的下注与返还合计
//
// 所有扣筹码走 Wager，所有返还走 Credit，净输赢 = Credited - Wagered。
type Ledger struct {
	Wagered  float64 `json:"wagered"`
	Credited float64 `json:"credited"`
}

func (l *Ledger) Wager(chips *float64, amount float64) {
	*chips -= amount
	l.Wagered += amount
}

func (l *Ledger) Credit(chips *float64, amount float64) {
	*chips += amount
	l.Credited += amount
}

// Refund 撤回尚未结算的下注，两边同时冲销
func (l *Ledger) Refund(chips *float64, amount float64) {
	*chips += amount
	l.Wagered -= amount
}

func (l Ledger) Net() float64 {
	return l.Credited - l.Wagered
}
