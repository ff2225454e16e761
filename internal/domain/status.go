package domain

// CardStatus represents the review status of a flashcard. A flashcard is New
// until its first recorded review; afterwards the status reflects only the
// most recent review outcome.
type CardStatus string

// Possible card status values
const (
	CardStatusNew       CardStatus = "new"
	CardStatusCorrect   CardStatus = "correct"
	CardStatusIncorrect CardStatus = "incorrect"
)

// Validate checks that the status is one of the known values.
func (s CardStatus) Validate() error {
	switch s {
	case CardStatusNew, CardStatusCorrect, CardStatusIncorrect:
		return nil
	default:
		return ErrInvalidCardStatus
	}
}

// String returns the status as a string.
func (s CardStatus) String() string {
	return string(s)
}
