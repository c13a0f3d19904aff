package holdemtable

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/weedbox/pokerface"
)

var (
	ErrCardSourceNotShuffled = errors.New("card source: deck has not been shuffled")
	ErrCardSourceEmptyDeck   = errors.New("card source: not enough cards in deck")
)

// CardSource supplies shuffled decks and the cards of a hand.
type CardSource interface {
	Shuffle(tableID string) ([]string, error)
	PocketCards(playerID string, tableID string) ([]string, error)
	Flop(tableID string) ([]string, error)
	Turn(tableID string) (string, error)
	River(tableID string) (string, error)
}

type dealtCards struct {
	PocketCards map[string][]string
	FlopCards   []string
	TurnCard    string
	RiverCard   string
}

// dealHandCards asks the card source for every card of a hand and checks they are distinct cards of the deck.
func dealHandCards(tableID string, dealOrder []string, deck []string, cards CardSource) (*dealtCards, error) {
	inDeck := make(map[string]bool)
	for _, card := range deck {
		inDeck[card] = true
	}

	used := make(map[string]bool)
	use := func(card string) error {
		if !inDeck[card] || used[card] {
			return fmt.Errorf("%w: card %q", ErrTableInconsistentHandSeeded, card)
		}
		used[card] = true
		return nil
	}

	dealt := &dealtCards{
		PocketCards: make(map[string][]string),
	}

	for _, playerID := range dealOrder {
		pocketCards, err := cards.PocketCards(playerID, tableID)
		if err != nil {
			return nil, err
		}

		if len(pocketCards) != PocketCardsCount {
			return nil, fmt.Errorf("%w: %d pocket cards for %s", ErrTableInconsistentHandSeeded, len(pocketCards), playerID)
		}

		for _, card := range pocketCards {
			if err := use(card); err != nil {
				return nil, err
			}
		}
		dealt.PocketCards[playerID] = append([]string{}, pocketCards...)
	}

	flop, err := cards.Flop(tableID)
	if err != nil {
		return nil, err
	}
	if len(flop) != 3 {
		return nil, fmt.Errorf("%w: %d flop cards", ErrTableInconsistentHandSeeded, len(flop))
	}
	for _, card := range flop {
		if err := use(card); err != nil {
			return nil, err
		}
	}
	dealt.FlopCards = append([]string{}, flop...)

	if dealt.TurnCard, err = cards.Turn(tableID); err != nil {
		return nil, err
	}
	if err := use(dealt.TurnCard); err != nil {
		return nil, err
	}

	if dealt.RiverCard, err = cards.River(tableID); err != nil {
		return nil, err
	}
	if err := use(dealt.RiverCard); err != nil {
		return nil, err
	}

	return dealt, nil
}

// NativeCardSource deals from a pokerface standard deck shuffled with an injected random source.
type NativeCardSource struct {
	mu    sync.Mutex
	r     *rand.Rand
	decks map[string][]string // key: table id, value: remaining cards
}

func NewNativeCardSource(r *rand.Rand) *NativeCardSource {
	return &NativeCardSource{
		r:     r,
		decks: make(map[string][]string),
	}
}

func (ncs *NativeCardSource) Shuffle(tableID string) ([]string, error) {
	ncs.mu.Lock()
	defer ncs.mu.Unlock()

	deck := make([]string, 0, 52)
	for _, card := range pokerface.NewStandardDeckCards() {
		deck = append(deck, card)
	}

	ncs.r.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	ncs.decks[tableID] = append([]string{}, deck...)
	return deck, nil
}

func (ncs *NativeCardSource) PocketCards(playerID string, tableID string) ([]string, error) {
	return ncs.draw(tableID, PocketCardsCount)
}

func (ncs *NativeCardSource) Flop(tableID string) ([]string, error) {
	return ncs.draw(tableID, 3)
}

func (ncs *NativeCardSource) Turn(tableID string) (string, error) {
	cards, err := ncs.draw(tableID, 1)
	if err != nil {
		return "", err
	}
	return cards[0], nil
}

func (ncs *NativeCardSource) River(tableID string) (string, error) {
	cards, err := ncs.draw(tableID, 1)
	if err != nil {
		return "", err
	}
	return cards[0], nil
}

func (ncs *NativeCardSource) draw(tableID string, count int) ([]string, error) {
	ncs.mu.Lock()
	defer ncs.mu.Unlock()

	deck, exist := ncs.decks[tableID]
	if !exist {
		return nil, ErrCardSourceNotShuffled
	}

	if len(deck) < count {
		return nil, ErrCardSourceEmptyDeck
	}

	cards := append([]string{}, deck[:count]...)
	ncs.decks[tableID] = deck[count:]
	return cards, nil
}
