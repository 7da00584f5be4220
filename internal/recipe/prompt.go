package recipe

import "strings"

// Seasonings lists the pantry staples the model may assume are available
var Seasonings = []string{
	"塩", "砂糖", "醤油", "味噌", "酢", "料理酒", "サラダ油", "ごま油", "オリーブオイル",
	"こしょう", "からし", "わさび", "生姜", "にんにく", "マヨネーズ", "ケチャップ", "ソース",
	"めんつゆ", "だし", "ポン酢", "ドレッシング", "豆板醤", "甜麺醤",
}

const (
	promptListPrefix = "以下の食材を使った料理のレシピを提案してください：\n"

	promptInstructions = "条件：\n" +
		"- できるだけ上記の食材だけを使ってください。\n" +
		"- すべての食材を使い切る必要はありません。\n" +
		"- 食材が余っても問題ありません。"

	promptSeasoningsPrefix = "以下の調味料は自由に使って構いません：\n"

	promptOutputHeading = "次の形式で出力してください："

	promptOutputOutline = "1. 料理名\n" +
		"2. 調理時間\n" +
		"3. 使用する食材と分量\n" +
		"4. 作り方（手順）\n" +
		"5. コツ・ポイント"
)

// PromptSections returns the five parts of the recipe prompt, in order:
// ingredient line, instructions, seasonings, output heading, output outline.
func PromptSections(ingredientsList string) []string {
	return []string{
		promptListPrefix + ingredientsList,
		promptInstructions,
		promptSeasoningsPrefix + strings.Join(Seasonings, ListSeparator),
		promptOutputHeading,
		promptOutputOutline,
	}
}

// BuildPrompt composes the full single-turn recipe prompt
func BuildPrompt(ingredientsList string) string {
	return strings.Join(PromptSections(ingredientsList), "\n\n")
}
