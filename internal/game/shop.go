package game

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cardsharp/drainvault/internal/session"
)

// ShopItem is a purchasable upgrade. Each level doubles in cost.
type ShopItem struct {
	Key         string
	Name        string
	Description string
	BaseCost    int
	MaxLevel    int
}

// shopEntry binds an item to the session field it upgrades.
type shopEntry struct {
	item    ShopItem
	aliases []string
	level   func(s *session.Session) int
	upgrade func(s *session.Session)
}

// Shop handles black-market interactions and purchases
type Shop struct {
	entries []shopEntry
}

// NewShop creates the shop with the standard inventory
func NewShop() *Shop {
	return &Shop{
		entries: []shopEntry{
			{
				item: ShopItem{
					Key:         "1",
					Name:        "Odds Augmenter",
					Description: "Doubles payout multiplier per level.",
					BaseCost:    4000,
					MaxLevel:    7,
				},
				aliases: []string{"odds", "augmenter"},
				level:   func(s *session.Session) int { return s.Upgrades.OddsLevel },
				upgrade: func(s *session.Session) { s.Upgrades.OddsLevel++ },
			},
			{
				item: ShopItem{
					Key:         "2",
					Name:        "Bet Amplifier",
					Description: "Doubles your base stake per level.",
					BaseCost:    3000,
					MaxLevel:    7,
				},
				aliases: []string{"bet", "stake"},
				level:   func(s *session.Session) int { return s.Upgrades.BetLevel },
				upgrade: func(s *session.Session) { s.Upgrades.BetLevel++ },
			},
			{
				item: ShopItem{
					Key:         "3",
					Name:        "AI Card Counter",
					Description: "Reveals exact win percentages.",
					BaseCost:    30000,
					MaxLevel:    1,
				},
				aliases: []string{"ai", "counter"},
				level: func(s *session.Session) int {
					if s.Upgrades.AICounter {
						return 1
					}
					return 0
				},
				upgrade: func(s *session.Session) { s.Upgrades.AICounter = true },
			},
			{
				item: ShopItem{
					Key:         "4",
					Name:        "Double Jokers",
					Description: "Doubles joker count per deck.",
					BaseCost:    60000,
					MaxLevel:    1,
				},
				aliases: []string{"joker", "jokers"},
				level:   func(s *session.Session) int { return s.Upgrades.JokerLevel },
				upgrade: func(s *session.Session) { s.Upgrades.JokerLevel++ },
			},
		},
	}
}

// NextCost returns what the next level of an item costs
func (s *Shop) NextCost(item ShopItem, level int) int {
	return item.BaseCost * (1 << level)
}

// Open runs the shop loop until the player backs out. Every purchase is
// saved immediately.
func (s *Shop) Open(io IO, sess *session.Session, store *session.Store, logger *log.Logger) error {
	sess.VisitedShop = true
	for {
		io.Print("")
		io.Print("=== BLACK MARKET TERMINAL ===")
		io.Print(fmt.Sprintf("Balance: %d credits", sess.Balance))
		for _, entry := range s.entries {
			s.showEntry(io, sess, entry)
		}
		io.Print("B) Back to mission")

		choice, err := io.Prompt("What would you like to buy? ")
		if err != nil {
			return err
		}
		entry, ok := s.match(choice)
		if !ok {
			if isBackChoice(choice) {
				return nil
			}
			io.Print("Unknown selection.")
			continue
		}

		s.attemptPurchase(io, sess, entry, logger)
		if err := store.Save(sess); err != nil {
			logger.Error("save after purchase failed", "error", err)
		}
	}
}

func (s *Shop) showEntry(io IO, sess *session.Session, entry shopEntry) {
	level := entry.level(sess)
	status := fmt.Sprintf("Lv %d", level)
	costLabel := fmt.Sprintf("%d", s.NextCost(entry.item, level))
	if level >= entry.item.MaxLevel {
		status = "MAX"
		costLabel = "N/A"
	}
	io.Print(fmt.Sprintf("%s) %s [%s] - %s (Cost: %s)",
		entry.item.Key, entry.item.Name, status, entry.item.Description, costLabel))
}

func (s *Shop) match(choice string) (shopEntry, bool) {
	normalized := normalizeChoice(choice)
	for _, entry := range s.entries {
		if entry.item.Key == normalized {
			return entry, true
		}
		for _, alias := range entry.aliases {
			if alias == normalized {
				return entry, true
			}
		}
	}
	return shopEntry{}, false
}

func (s *Shop) attemptPurchase(io IO, sess *session.Session, entry shopEntry, logger *log.Logger) {
	level := entry.level(sess)
	if level >= entry.item.MaxLevel {
		if entry.item.MaxLevel == 1 {
			io.Print("Upgrade already installed.")
		} else {
			io.Print("Upgrade already at max level.")
		}
		return
	}
	cost := s.NextCost(entry.item, level)
	if sess.Balance < cost {
		io.Print("You cant afford that, pick something else.")
		return
	}
	sess.Balance -= cost
	entry.upgrade(sess)
	logger.Info("upgrade purchased",
		"item", entry.item.Name,
		"level", entry.level(sess),
		"cost", cost,
		"balance", sess.Balance)
	io.Print("Purchase confirmed.")
}
