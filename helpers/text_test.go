package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  12  ", "12"},
		{": 12", "12"},
		{"36\nMonths -", "36 Months"},
		{"PowerVolt\t Pro   Series", "PowerVolt Pro Series"},
		{"— India —", "India"},
		{"| 207 x 175 x 190 |", "207 x 175 x 190"},
		{"", ""},
		{" :;,- ", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CleanText(c.in), "input %q", c.in)
	}
}

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"BT-123", "bt123"},
		{"bt 123", "bt123"},
		{"  PowerVolt 12V  ", "powervolt12v"},
		{"₹ 4,500", "4500"},
		{"", ""},
		{"---", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeKey(c.in), "input %q", c.in)
	}
}
