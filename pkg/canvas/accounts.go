package canvas

import (
	"context"
	"encoding/json"
	"fmt"
)

func (s *service) ListAccounts(ctx context.Context, opts ListOptions) ([]Account, string, error) {
	res, err := s.call(ctx, epListAccounts, callOptions{
		rawQuery: listQuery(opts),
		cursor:   opts.Cursor,
	})
	if err != nil {
		return nil, "", err
	}

	var accounts []Account
	if err := json.Unmarshal(res.body, &accounts); err != nil {
		return nil, "", fmt.Errorf("decode accounts: %w", err)
	}
	return accounts, nextCursor(res.header), nil
}

// GetAccount accepts a numeric account id or the literal "self".
func (s *service) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	res, err := s.call(ctx, epGetAccount, callOptions{pathArgs: []any{accountID}})
	if err != nil {
		return nil, err
	}

	var account Account
	if err := json.Unmarshal(res.body, &account); err != nil {
		return nil, fmt.Errorf("decode account: %w", err)
	}
	return &account, nil
}
