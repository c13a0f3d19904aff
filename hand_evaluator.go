package holdemtable

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulhankin/poker"
	"github.com/thoas/go-funk"
)

var (
	ErrEvaluatorInvalidCard     = errors.New("evaluator: invalid card")
	ErrEvaluatorInvalidCount    = errors.New("evaluator: need five community cards and two pocket cards")
	ErrEvaluatorImpossibleHand  = errors.New("evaluator: hand is not among the possible hands")
	ErrEvaluatorNoPossibleHands = errors.New("evaluator: no possible hands")
)

const (
	HandCategory_StraightFlush = "straight_flush"
	HandCategory_FourOfAKind   = "four_of_a_kind"
	HandCategory_FullHouse     = "full_house"
	HandCategory_Flush         = "flush"
	HandCategory_Straight      = "straight"
	HandCategory_ThreeOfAKind  = "three_of_a_kind"
	HandCategory_TwoPair       = "two_pair"
	HandCategory_Pair          = "pair"
	HandCategory_HighCard      = "high_card"
)

// HandRank is an opaque ranking; a higher Value wins.
type HandRank struct {
	Value       int64  `json:"value"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type HandEvaluator interface {
	PossibleHands(communityCards []string) ([]string, error)
	Evaluate(communityCards []string, pocketCards []string, possibleHands []string) (HandRank, error)
}

// NativeHandEvaluator ranks seven-card hands with paulhankin/poker.
type NativeHandEvaluator struct{}

func NewNativeHandEvaluator() *NativeHandEvaluator {
	return &NativeHandEvaluator{}
}

/*
PossibleHands 依公牌列出任何兩張手牌可能組成的牌型, 由大到小
  - 同花順: 公牌有三張同花且落在五張連續點數內
  - 四條、葫蘆: 公牌有對子
  - 同花: 公牌有三張同花
  - 順子: 公牌有三個不同點數落在五張連續點數內
*/
func (e *NativeHandEvaluator) PossibleHands(communityCards []string) ([]string, error) {
	if len(communityCards) != 5 {
		return nil, ErrEvaluatorInvalidCount
	}

	cards, err := parseCards(communityCards)
	if err != nil {
		return nil, err
	}

	rankCounts := make(map[int]int)
	suitRanks := make(map[int][]int)
	for _, c := range cards {
		rankCounts[c.rank]++
		suitRanks[c.suit] = append(suitRanks[c.suit], c.rank)
	}

	boardPaired := false
	for _, count := range rankCounts {
		if count >= 2 {
			boardPaired = true
		}
	}

	straightFlushPossible := false
	flushPossible := false
	for _, ranks := range suitRanks {
		if len(ranks) >= 3 {
			flushPossible = true
			if hasStraightDraw(ranks) {
				straightFlushPossible = true
			}
		}
	}

	ranks := make([]int, 0)
	for _, c := range cards {
		ranks = append(ranks, c.rank)
	}

	possible := make([]string, 0, 9)
	if straightFlushPossible {
		possible = append(possible, HandCategory_StraightFlush)
	}
	if boardPaired {
		possible = append(possible, HandCategory_FourOfAKind, HandCategory_FullHouse)
	}
	if flushPossible {
		possible = append(possible, HandCategory_Flush)
	}
	if hasStraightDraw(ranks) {
		possible = append(possible, HandCategory_Straight)
	}
	possible = append(possible, HandCategory_ThreeOfAKind, HandCategory_TwoPair, HandCategory_Pair, HandCategory_HighCard)

	return possible, nil
}

func (e *NativeHandEvaluator) Evaluate(communityCards []string, pocketCards []string, possibleHands []string) (HandRank, error) {
	if len(communityCards) != 5 || len(pocketCards) != PocketCardsCount {
		return HandRank{}, ErrEvaluatorInvalidCount
	}

	if len(possibleHands) == 0 {
		return HandRank{}, ErrEvaluatorNoPossibleHands
	}

	cards, err := parseCards(append(append([]string{}, communityCards...), pocketCards...))
	if err != nil {
		return HandRank{}, err
	}

	var finalHand [7]poker.Card
	for i, c := range cards {
		card, err := poker.MakeCard(poker.Suit(c.suit), poker.Rank(c.rank))
		if err != nil {
			return HandRank{}, fmt.Errorf("%w: %v", ErrEvaluatorInvalidCard, err)
		}
		finalHand[i] = card
	}

	description, err := poker.Describe(finalHand[:])
	if err != nil {
		return HandRank{}, fmt.Errorf("%w: %v", ErrEvaluatorInvalidCard, err)
	}

	category := classifyHand(cards)
	if !funk.Contains(possibleHands, category) {
		return HandRank{}, fmt.Errorf("%w: %s", ErrEvaluatorImpossibleHand, category)
	}

	return HandRank{
		Value:       int64(poker.Eval7(&finalHand)),
		Category:    category,
		Description: description,
	}, nil
}

// card suit 0-3: clubs, diamonds, hearts, spades; rank 1-13 with ace = 1
type card struct {
	suit int
	rank int
}

var (
	cardSuits = map[byte]int{'C': 0, 'D': 1, 'H': 2, 'S': 3}
	cardRanks = map[byte]int{
		'A': 1, '2': 2, '3': 3, '4': 4, '5': 5, '6': 6, '7': 7,
		'8': 8, '9': 9, 'T': 10, 'J': 11, 'Q': 12, 'K': 13,
	}
)

// parseCard accepts suit-first ("SA") or rank-first ("AS") notation.
func parseCard(s string) (card, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if len(upper) != 2 {
		return card{}, fmt.Errorf("%w: %q", ErrEvaluatorInvalidCard, s)
	}

	if suit, ok := cardSuits[upper[0]]; ok {
		if rank, ok := cardRanks[upper[1]]; ok {
			return card{suit: suit, rank: rank}, nil
		}
	}

	if rank, ok := cardRanks[upper[0]]; ok {
		if suit, ok := cardSuits[upper[1]]; ok {
			return card{suit: suit, rank: rank}, nil
		}
	}

	return card{}, fmt.Errorf("%w: %q", ErrEvaluatorInvalidCard, s)
}

func parseCards(cards []string) ([]card, error) {
	parsed := make([]card, 0, len(cards))
	seen := make(map[card]bool)
	for _, s := range cards {
		c, err := parseCard(s)
		if err != nil {
			return nil, err
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate %q", ErrEvaluatorInvalidCard, s)
		}
		seen[c] = true
		parsed = append(parsed, c)
	}
	return parsed, nil
}

// straightWindows lists every five-rank run; 14 stands for a high ace.
var straightWindows = func() [][]int {
	windows := make([][]int, 0, 10)
	for low := 1; low <= 10; low++ {
		windows = append(windows, []int{low, low + 1, low + 2, low + 3, low + 4})
	}
	return windows
}()

func rankSet(ranks []int) map[int]bool {
	set := make(map[int]bool)
	for _, rank := range ranks {
		set[rank] = true
		if rank == 1 {
			set[14] = true
		}
	}
	return set
}

func countInWindow(set map[int]bool, window []int) int {
	count := 0
	for _, rank := range window {
		if set[rank] {
			count++
		}
	}
	return count
}

func hasStraightDraw(ranks []int) bool {
	set := rankSet(ranks)
	for _, window := range straightWindows {
		if countInWindow(set, window) >= 3 {
			return true
		}
	}
	return false
}

func hasStraight(ranks []int) bool {
	set := rankSet(ranks)
	for _, window := range straightWindows {
		if countInWindow(set, window) == 5 {
			return true
		}
	}
	return false
}

func classifyHand(cards []card) string {
	rankCounts := make(map[int]int)
	suitRanks := make(map[int][]int)
	ranks := make([]int, 0, len(cards))
	for _, c := range cards {
		rankCounts[c.rank]++
		suitRanks[c.suit] = append(suitRanks[c.suit], c.rank)
		ranks = append(ranks, c.rank)
	}

	for _, suited := range suitRanks {
		if len(suited) >= 5 && hasStraight(suited) {
			return HandCategory_StraightFlush
		}
	}

	trips, pairs := 0, 0
	for _, count := range rankCounts {
		switch {
		case count == 4:
			return HandCategory_FourOfAKind
		case count == 3:
			trips++
		case count == 2:
			pairs++
		}
	}

	if trips >= 2 || (trips == 1 && pairs >= 1) {
		return HandCategory_FullHouse
	}

	for _, suited := range suitRanks {
		if len(suited) >= 5 {
			return HandCategory_Flush
		}
	}

	if hasStraight(ranks) {
		return HandCategory_Straight
	}

	switch {
	case trips == 1:
		return HandCategory_ThreeOfAKind
	case pairs >= 2:
		return HandCategory_TwoPair
	case pairs == 1:
		return HandCategory_Pair
	default:
		return HandCategory_HighCard
	}
}
