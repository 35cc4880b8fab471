package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SergeyParamoshkin/news/internal/model"
)

const legacyPrefix = "token_"

// Legacy issues the unsigned "token_<id>" tokens older clients expect.
// Anyone who knows a user id can forge one.
type Legacy struct{}

func (Legacy) Issue(u model.User) (string, error) {
	return legacyPrefix + strconv.FormatInt(u.ID, 10), nil
}

func (Legacy) Parse(token string) (int64, error) {
	rest := strings.TrimPrefix(token, legacyPrefix)
	if rest == token || rest == "" {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return id, nil
}
