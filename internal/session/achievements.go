package session

// Achievement keys referenced by game logic.
const (
	AchFirstDeck          = "first_deck"
	AchWinStreak5         = "win_streak_5"
	AchWinStreak10        = "win_streak_10"
	AchStatisticalAnomaly = "statistical_anomaly"
	AchMarketManipulator  = "market_manipulator"
	AchLongHaul           = "long_haul"
	AchVaultBreaker       = "vault_breaker"
	AchFirstPurchase      = "first_purchase"
	AchShadowOperator     = "shadow_operator"
	AchHighRoller         = "high_roller"
)

// Achievement describes one unlockable badge
type Achievement struct {
	Key         string
	Name        string
	Description string
}

// AchievementCatalog lists every badge in display order
var AchievementCatalog = []Achievement{
	{AchFirstDeck, "First time?", "Complete your first deck."},
	{AchWinStreak5, "Winning streak", "Win 5 rounds in a row."},
	{AchWinStreak10, "On fire", "Win 10 rounds in a row."},
	{AchStatisticalAnomaly, "Statistical Anomaly", "Win a round with <10% odds."},
	{AchMarketManipulator, "Market manipulator", "Max out every shop upgrade."},
	{AchLongHaul, "In it for the long haul", "Complete 5 decks."},
	{AchVaultBreaker, "Vault breaker", "Reach 100 million credits."},
	{AchFirstPurchase, "First purchase", "Buy your first upgrade."},
	{AchShadowOperator, "Shadow operator", "Complete a side mission successfully."},
	{AchHighRoller, "High roller", "Reach 1 million credits."},
}

// DefaultAchievementState returns the locked state for every badge
func DefaultAchievementState() map[string]bool {
	state := make(map[string]bool, len(AchievementCatalog))
	for _, a := range AchievementCatalog {
		state[a.Key] = false
	}
	return state
}

// MergeAchievementState normalizes stored achievement state against the
// catalog: unknown keys are dropped, missing keys come back locked.
func MergeAchievementState(stored map[string]bool) map[string]bool {
	state := DefaultAchievementState()
	for key, value := range stored {
		if _, known := state[key]; known {
			state[key] = value
		}
	}
	return state
}

// AchievementName returns the display name for a key, or the key itself
// if it is not in the catalog.
func AchievementName(key string) string {
	for _, a := range AchievementCatalog {
		if a.Key == key {
			return a.Name
		}
	}
	return key
}
