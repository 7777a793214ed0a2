package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShopText(t *testing.T) {
	text := ShopText("鬼金棒", []string{"味噌", "辛い"}, "神田", "痺れる")
	assert.Equal(t, "店名: 鬼金棒\nジャンル: 味噌, 辛い\n場所: 神田\n感想: 痺れる", text)

	assert.Equal(t, "店名: 蔦\nジャンル: \n場所: \n感想: ", ShopText("蔦", nil, "", ""))
}

func TestCleanQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "こってり\n味噌", want: "こってり 味噌"},
		{in: "  家系\r\nほうれん草  ", want: "家系 ほうれん草"},
		{in: "\n", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanQuery(tt.in))
	}
}
