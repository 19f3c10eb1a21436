package account

import (
	"encoding/json"
	"fmt"

	"github.com/verte-zerg/neurotype/internal/model"
)

// Store keys.
const (
	userKeyPrefix  = "user_"
	currentUserKey = "currentUser"
)

func userKey(username string) string {
	return userKeyPrefix + username
}

// storedAccount accepts the misspelt baseline field written by older clients.
type storedAccount struct {
	model.Account
	LegacyBaselineWPM *float64 `json:"baslineWPM,omitempty"`
}

func encodeAccount(acc model.Account) (string, error) {
	if acc.Stats.Races == nil {
		acc.Stats.Races = []model.RaceRecord{}
	}
	data, err := json.Marshal(acc)
	if err != nil {
		return "", fmt.Errorf("failed to encode account: %w", err)
	}
	return string(data), nil
}

func decodeAccount(raw string) (model.Account, error) {
	var rec storedAccount
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return model.Account{}, fmt.Errorf("failed to decode account: %w", err)
	}
	acc := rec.Account
	if acc.BaselineWPM == 0 && rec.LegacyBaselineWPM != nil {
		acc.BaselineWPM = *rec.LegacyBaselineWPM
	}
	return acc, nil
}
