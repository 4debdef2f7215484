package render

import "fmt"

// HeadingNumberer assigns hierarchical numbers to headings: five
// counters, Next increments the requested level and zeroes everything
// deeper. Level 1 is the decorative chapter ordinal; levels 2..4 carry
// the numeric hierarchy relative to the nearest level 2; level 5 uses
// circled digits.
type HeadingNumberer struct {
	counters [5]int
}

// Next advances the counter for level and returns the numbering prefix.
// Levels outside 1..5 produce no prefix.
func (n *HeadingNumberer) Next(level int) string {
	if level < 1 || level > 5 {
		return ""
	}
	idx := level - 1
	n.counters[idx]++
	for i := idx + 1; i < len(n.counters); i++ {
		n.counters[i] = 0
	}

	switch level {
	case 1:
		return chineseNumber(n.counters[0]) + "、"
	case 2:
		return fmt.Sprintf("%d. ", n.counters[1])
	case 3:
		return fmt.Sprintf("%d.%d ", n.counters[1], n.counters[2])
	case 4:
		return fmt.Sprintf("%d.%d.%d ", n.counters[1], n.counters[2], n.counters[3])
	}
	return circledNumber(n.counters[4])
}

// Reset zeroes all counters.
func (n *HeadingNumberer) Reset() {
	n.counters = [5]int{}
}

var chineseDigits = []string{
	"零", "一", "二", "三", "四", "五", "六", "七", "八", "九", "十",
	"十一", "十二", "十三", "十四", "十五", "十六", "十七", "十八", "十九", "二十",
}

// chineseNumber formats 0..99 as Chinese numerals, larger values decimal.
func chineseNumber(num int) string {
	if num >= 0 && num <= 20 {
		return chineseDigits[num]
	}
	if num > 20 && num < 100 {
		tens := num / 10
		ones := num % 10
		if ones == 0 {
			return chineseDigits[tens] + "十"
		}
		return chineseDigits[tens] + "十" + chineseDigits[ones]
	}
	return fmt.Sprintf("%d", num)
}

var circledDigits = []string{
	"⓪", "①", "②", "③", "④", "⑤", "⑥", "⑦", "⑧", "⑨", "⑩",
	"⑪", "⑫", "⑬", "⑭", "⑮", "⑯", "⑰", "⑱", "⑲", "⑳",
}

// circledNumber formats 0..20 as circled digits, larger values as (n).
func circledNumber(num int) string {
	if num >= 0 && num <= 20 {
		return circledDigits[num]
	}
	return fmt.Sprintf("(%d)", num)
}
