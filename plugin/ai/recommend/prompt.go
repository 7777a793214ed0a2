package recommend

import (
	"fmt"
	"strings"

	"github.com/watayuraType-C/playground-ramen-concierge/plugin/ai/ranking"
)

// CommentPrompt asks for a single recommendation sentence about a logged shop.
func CommentPrompt(query string, shop ranking.Candidate) string {
	return strings.Join([]string{
		"あなたはプロのラーメンコンシェルジュです。",
		"",
		"【タスク】",
		"下記情報を元に、「おすすめ文」1文のみを作成してください。",
		"",
		"【ユーザーの要望】",
		query,
		"",
		"【紹介するお店】",
		"特徴: " + strings.Join(shop.Categories, ", "),
		"場所: " + shop.Location,
		"あなたのメモ: " + shop.Review,
		"",
		"【出力ルール（最重要）】",
		"・出力は推薦文のみ",
		"・40〜55文字の日本語1文",
		"・前置き、説明、思考、箇条書き、改行は禁止",
	}, "\n")
}

// SuggestPrompt asks for one real shop outside the log, leaning towards the
// style of the logged match.
func SuggestPrompt(query string, shop ranking.Candidate) string {
	lines := []string{
		"あなたはラーメンの専門家です。",
		"ユーザーの要望に基づき、実在する有名なラーメン店を「1つだけ」提案してください。",
		"ただし、以下のリストにある店は除外してください。",
		fmt.Sprintf("除外リスト: [%s]", shop.Name),
		"",
		"【ユーザーの要望】",
		query,
		"",
		"【ユーザーの好みの傾向】",
		fmt.Sprintf("過去のログから「%s」（特徴: %s）がヒットしました。", shop.Name, strings.Join(shop.Categories, ", ")),
		"この店と系統や味が近く、かつユーザーの要望を満たす店を優先的に提案してください。",
		"",
		"【出力フォーマット（JSON）】",
		"必ず以下のJSON形式のみを出力してください。Markdownの装飾は不要です。",
		"{",
		`  "name": "正式な店名",`,
		`  "categories": ["ジャンル1", "ジャンル2"],`,
		`  "rating": 5,`,
		`  "location": "市区町村（例：横浜市西区）",`,
		`  "review": "お店の代表的な特徴や味の感想（客観的な事実に基づいたもの）",`,
		`  "similarity": null,`,
		fmt.Sprintf(`  "ai_comment": "この店を選んだ理由とおすすめポイント。DBの「%s」とどう似ているかにも触れてください。（100文字以内）"`, shop.Name),
		"}",
	}
	return strings.Join(lines, "\n")
}
