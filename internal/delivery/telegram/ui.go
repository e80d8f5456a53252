package telegram

import (
	"fmt"
	"sort"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

const buttonsPerRow = 2

// buildCategoriesKeyboard builds the category picker.
func buildCategoriesKeyboard(categories []entities.Category) tgbotapi.InlineKeyboardMarkup {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(categories))
	for _, c := range categories {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(c.Name, buildCategoryCallback(c.ID)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(chunkButtons(buttons, buttonsPerRow)...)
}

// buildSubcategoriesKeyboard builds the subcategory picker with a way back.
func buildSubcategoriesKeyboard(subcategories []entities.Subcategory) tgbotapi.InlineKeyboardMarkup {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(subcategories))
	for _, s := range subcategories {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(s.Name, buildSubcategoryCallback(s.ID)))
	}

	rows := chunkButtons(buttons, buttonsPerRow)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnBack, buildCategoriesCallback()),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildWordListKeyboard builds the list size switch and the practice shortcuts.
func buildWordListKeyboard(limits entities.WordLimits, current int) tgbotapi.InlineKeyboardMarkup {
	var limitRow []tgbotapi.InlineKeyboardButton
	for _, n := range limitChoices(limits) {
		label := fmt.Sprintf("%d", n)
		if n == current {
			label = "• " + label + " •"
		}
		limitRow = append(limitRow, tgbotapi.NewInlineKeyboardButtonData(label, buildLimitCallback(n)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		limitRow,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnRandom, buildRandomCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnFlash, buildFlashDrawCallback()),
			tgbotapi.NewInlineKeyboardButtonData(btnQuiz, buildNextQuestionCallback(entities.QuizModeTyped)),
			tgbotapi.NewInlineKeyboardButtonData(btnChoice, buildNextQuestionCallback(entities.QuizModeChoice)),
		),
	)
}

// buildRandomKeyboard offers another sample and the practice modes.
func buildRandomKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnRandomAgain, buildRandomCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnFlash, buildFlashDrawCallback()),
			tgbotapi.NewInlineKeyboardButtonData(btnQuiz, buildNextQuestionCallback(entities.QuizModeTyped)),
			tgbotapi.NewInlineKeyboardButtonData(btnChoice, buildNextQuestionCallback(entities.QuizModeChoice)),
		),
	)
}

// buildFlashcardKeyboard builds the known / wrong marks for a card.
func buildFlashcardKeyboard(wordID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnKnown, buildFlashMarkCallback(entities.StatusKnown, wordID)),
			tgbotapi.NewInlineKeyboardButtonData(btnWrong, buildFlashMarkCallback(entities.StatusWrong, wordID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnDraw, buildFlashDrawCallback()),
		),
	)
}

func buildDrawKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnDraw, buildFlashDrawCallback()),
		),
	)
}

// buildQuestionKeyboard builds the option buttons of a choice question, one per row.
func buildQuestionKeyboard(q *entities.Question) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options)+1)
	for i, opt := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt, buildQuizAnswerCallback(i, q.Word.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildNextQuestionKeyboard(mode entities.QuizMode) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnNext, buildNextQuestionCallback(mode)),
		),
	)
}

func buildDigestKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnFlash, buildFlashDrawCallback()),
			tgbotapi.NewInlineKeyboardButtonData(btnQuiz, buildNextQuestionCallback(entities.QuizModeTyped)),
		),
	)
}

// limitChoices returns the distinct list sizes offered to the user, ascending.
func limitChoices(l entities.WordLimits) []int {
	seen := make(map[int]bool, 4)
	var out []int
	for _, n := range []int{l.Min, l.Default, (l.Default + l.Max) / 2, l.Max} {
		n = l.Clamp(n)
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}

func chunkButtons(buttons []tgbotapi.InlineKeyboardButton, size int) [][]tgbotapi.InlineKeyboardButton {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, (len(buttons)+size-1)/size)
	for start := 0; start < len(buttons); start += size {
		end := start + size
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons[start:end]...))
	}
	return rows
}
