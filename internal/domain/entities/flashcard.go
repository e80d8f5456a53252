package entities

// Flashcard is a word drawn at random from the selected subcategory.
type Flashcard struct {
	Word  WordEntry
	Title string // selection the card was drawn from
}
