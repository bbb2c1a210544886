package db

import (
	"context"
	"slices"

	"quickanswer/internal/models"
)

var channels = []string{models.ChannelHTTP, models.ChannelQueue, models.ChannelCLI}

// IncrementOutcome upserts the resolution count for an outcome on a channel.
func (d *DB) IncrementOutcome(ctx context.Context, outcome, channel string) error {
	if !slices.Contains(models.Outcomes, outcome) {
		return ErrUnknownOutcome
	}
	if !slices.Contains(channels, channel) {
		return ErrUnknownChannel
	}

	_, err := d.Pool.Exec(ctx, `
		INSERT INTO resolution_outcomes (outcome, channel, count, last_seen_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (outcome, channel) DO UPDATE
		SET count = resolution_outcomes.count + 1, last_seen_at = NOW()
	`, outcome, channel)
	return err
}

// GetAllOutcomes returns all outcome rows for metrics export.
func (d *DB) GetAllOutcomes(ctx context.Context) ([]models.ResolutionOutcome, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT outcome, channel, count, last_seen_at
		FROM resolution_outcomes
		ORDER BY outcome, channel
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []models.ResolutionOutcome
	for rows.Next() {
		var o models.ResolutionOutcome
		if err := rows.Scan(&o.Outcome, &o.Channel, &o.Count, &o.LastSeenAt); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
