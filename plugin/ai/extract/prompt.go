package extract

import (
	"strings"
)

// Prompt builds the instruction that turns a free-form note into shop JSON.
func Prompt(userText string) string {
	var b strings.Builder
	b.WriteString("あなたはラーメンに精通したコンシェルジュです。\n")
	b.WriteString("以下の「ユーザーのメモ」から情報を抽出し、指定されたJSON形式で出力してください。\n\n")
	b.WriteString("### 抽出ルール:\n")
	b.WriteString("1. name (店名): 必ず抽出してください。不明な場合は \"" + UnknownName + "\" としてください。\n")
	b.WriteString("2. categories (ジャンル): ラーメンの種類（醤油、味噌、家系など）を配列で抽出してください。\n")
	b.WriteString("3. rating (評価): 1〜5の数値で抽出してください。不明な場合は null にしてください。\n")
	b.WriteString("4. location (場所): 店の場所やエリアを抽出してください。不明な場合は null にしてください。\n")
	b.WriteString("5. review (感想): 味や接客などの感想を抽出してください。不明な場合は null にしてください。\n\n")
	b.WriteString("### 出力形式:\n")
	b.WriteString("JSON形式のみで回答してください。余計な解説は不要です。\n\n")
	b.WriteString("### ユーザーのメモ:\n")
	b.WriteString("\"" + userText + "\"")
	return b.String()
}
