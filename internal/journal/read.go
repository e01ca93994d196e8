package journal

import (
	"context"
	"fmt"
	"strings"
)

// Filter narrows a journal read. Zero-value fields impose no constraint.
type Filter struct {
	Initiator string
	Target    string
	Signal    string
	Limit     int
}

// ListReactions returns journal records matching the filter, ordered by
// run token then seq so a run's steps read contiguously.
// Returns an empty slice, not nil, when nothing matches.
func (s *Store) ListReactions(ctx context.Context, f Filter) ([]Reaction, error) {
	query := `
		SELECT run_token, seq, initiator, target, signal, emote, text_key, combo, streak
		FROM reactions`
	where, args := buildWhere(f)
	query += where + `
		ORDER BY run_token ASC, seq ASC`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reactions: %w", err)
	}
	defer rows.Close()

	out := []Reaction{}
	for rows.Next() {
		var r Reaction
		var combo int
		if err := rows.Scan(&r.RunToken, &r.Seq, &r.Initiator, &r.Target,
			&r.Signal, &r.Emote, &r.TextKey, &combo, &r.Streak); err != nil {
			return nil, fmt.Errorf("scan reaction: %w", err)
		}
		r.Combo = combo != 0
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reactions: %w", err)
	}
	return out, nil
}

// ListRewards returns reward grants matching the filter, ordered by day
// then pair.
func (s *Store) ListRewards(ctx context.Context, f Filter) ([]Reward, error) {
	query := `
		SELECT initiator, target, day, amount, run_token, seq
		FROM rewards`
	where, args := buildWhere(Filter{Initiator: f.Initiator, Target: f.Target})
	query += where + `
		ORDER BY day ASC, initiator ASC, target ASC`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rewards: %w", err)
	}
	defer rows.Close()

	out := []Reward{}
	for rows.Next() {
		var r Reward
		if err := rows.Scan(&r.Initiator, &r.Target, &r.Day, &r.Amount,
			&r.RunToken, &r.Seq); err != nil {
			return nil, fmt.Errorf("scan reward: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rewards: %w", err)
	}
	return out, nil
}

func buildWhere(f Filter) (string, []any) {
	var clauses []string
	var args []any
	if f.Initiator != "" {
		clauses = append(clauses, "initiator = ?")
		args = append(args, f.Initiator)
	}
	if f.Target != "" {
		clauses = append(clauses, "target = ?")
		args = append(args, f.Target)
	}
	if f.Signal != "" {
		clauses = append(clauses, "signal = ?")
		args = append(args, f.Signal)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return "\n\t\tWHERE " + strings.Join(clauses, " AND "), args
}
