package utils

import "strings"

var ones = []string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// Indian numbering tiers, largest first. The crore multiplier is unbounded.
var magnitudes = []struct {
	value int64
	name  string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

// NumberToWords spells num using the Indian numbering system, e.g.
// 118 -> "One Hundred Eighteen", 250000 -> "Two Lakh Fifty Thousand".
func NumberToWords(num int64) (string, error) {
	if num < 0 {
		return "", ErrNegativeAmount
	}
	if num == 0 {
		return ones[0], nil
	}
	return strings.Join(spell(num, nil), " "), nil
}

func spell(num int64, words []string) []string {
	for _, m := range magnitudes {
		if num >= m.value {
			words = spell(num/m.value, words)
			words = append(words, m.name)
			num %= m.value
		}
	}
	if num >= 20 {
		words = append(words, tens[num/10])
		num %= 10
	}
	if num > 0 {
		words = append(words, ones[num])
	}
	return words
}

// RupeesInWords is the amount line printed under the totals.
func RupeesInWords(amount int64) (string, error) {
	w, err := NumberToWords(amount)
	if err != nil {
		return "", err
	}
	return w + " Rupees Only", nil
}
