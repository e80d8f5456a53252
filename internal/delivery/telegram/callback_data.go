package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aliskhannn/topik-vocab-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionCategories  = "cats"
	actionCategory    = "cat"
	actionSubcategory = "sub"
	actionLimit       = "limit"
	actionRandom      = "rand"
	actionFlash       = "flash"
	actionQuiz        = "quiz"
	actionNext        = "next"
)

// Flashcard sub-actions besides the two statuses.
const flashDraw = "draw"

var errBadCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// int64Param parses the i-th parameter as a positive id.
func (cd callbackData) int64Param(i int) (int64, error) {
	if i >= len(cd.Params) {
		return 0, fmt.Errorf("%w: %q", errBadCallback, cd.Raw)
	}
	v, err := strconv.ParseInt(cd.Params[i], 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %q", errBadCallback, cd.Raw)
	}
	return v, nil
}

// intParam parses the i-th parameter as a non-negative int.
func (cd callbackData) intParam(i int) (int, error) {
	if i >= len(cd.Params) {
		return 0, fmt.Errorf("%w: %q", errBadCallback, cd.Raw)
	}
	v, err := strconv.Atoi(cd.Params[i])
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q", errBadCallback, cd.Raw)
	}
	return v, nil
}

func buildCategoriesCallback() string {
	return actionCategories
}

func buildCategoryCallback(id int64) string {
	return callbackData{
		Action: actionCategory,
		Params: []string{strconv.FormatInt(id, 10)},
	}.encode()
}

func buildSubcategoryCallback(id int64) string {
	return callbackData{
		Action: actionSubcategory,
		Params: []string{strconv.FormatInt(id, 10)},
	}.encode()
}

func buildLimitCallback(limit int) string {
	return callbackData{
		Action: actionLimit,
		Params: []string{strconv.Itoa(limit)},
	}.encode()
}

// buildFlashMarkCallback builds callback data for marking a flashcard.
func buildFlashMarkCallback(status entities.Status, wordID int64) string {
	return callbackData{
		Action: actionFlash,
		Params: []string{string(status), strconv.FormatInt(wordID, 10)},
	}.encode()
}

func buildRandomCallback() string {
	return actionRandom
}

func buildFlashDrawCallback() string {
	return callbackData{
		Action: actionFlash,
		Params: []string{flashDraw},
	}.encode()
}

// buildQuizAnswerCallback builds callback data for answering a choice
// question. The word id ties the button to the question it was shown with.
func buildQuizAnswerCallback(index int, wordID int64) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{strconv.Itoa(index), strconv.FormatInt(wordID, 10)},
	}.encode()
}

// buildNextQuestionCallback builds callback data for asking a new question.
func buildNextQuestionCallback(mode entities.QuizMode) string {
	return callbackData{
		Action: actionNext,
		Params: []string{string(mode)},
	}.encode()
}
