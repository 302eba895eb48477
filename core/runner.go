package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
)

// maxEvidenceLen caps evidence text captured from failing checks so raw
// dumps never reach the final record.
const maxEvidenceLen = 240

// RunAssessment runs every check against one repository and reduces the
// records into an overall score and certification tier.
//
// Each check is isolated: an applicability-gate error, an assessment error,
// a panic or a timeout produces exactly one terminal record for that check
// and has no effect on any other check or on the run as a whole. Checks run
// concurrently up to cfg.Workers, but the returned record list always
// preserves catalog order.
//
// The only errors returned are config defects (bad weight overrides); a run
// with zero successfully executed checks still returns a valid RunResult.
func RunAssessment(ctx context.Context, cfg *contract.Config, repo schema.Repository, checks []contract.Check, attrs schema.AttributeIndex) (*schema.RunResult, error) {
	if err := contract.ValidateWeights(cfg.Weights); err != nil {
		return nil, err
	}

	start := time.Now()
	records := make([]schema.ResultRecord, len(checks))

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	idxCh := make(chan int, len(checks))
	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for i := range idxCh {
				// Each index is written by exactly one goroutine, so the
				// shared slice needs no further synchronization.
				records[i] = executeCheck(ctx, cfg, repo, checks[i], attrs)
			}
		})
	}

	for i := range checks {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()

	overall, tier := ComputeOverall(records, cfg.Weights, cfg.Excluded)
	assessed, skipped, total := schema.CountRecords(records)

	return &schema.RunResult{
		RunID:     uuid.NewString(),
		Repo:      repo,
		StartedAt: start,
		Duration:  time.Since(start),
		Records:   records,
		Overall:   overall,
		Tier:      tier,
		Assessed:  assessed,
		Skipped:   skipped,
		Total:     total,
	}, nil
}

// executeCheck runs one check through the applicability gate and assessment,
// converting every failure mode into a terminal record. Panics are caught at
// this boundary so a misbehaving check cannot take down sibling checks.
func executeCheck(ctx context.Context, cfg *contract.Config, repo schema.Repository, chk contract.Check, attrs schema.AttributeIndex) (rec schema.ResultRecord) {
	rec = newRecord(chk, attrs)

	defer func() {
		if r := recover(); r != nil {
			rec.Status = schema.ErrorStatus
			rec.Score = 0
			rec.Evidence = sanitizeMessage(fmt.Sprintf("check panicked: %v", r))
		}
	}()

	applicable, err := chk.IsApplicable(repo)
	if err != nil {
		rec.Status = schema.ErrorStatus
		rec.Evidence = sanitizeMessage("applicability gate failed: " + err.Error())
		return rec
	}
	if !applicable {
		rec.Status = schema.NotApplicableStatus
		rec.Evidence = fmt.Sprintf("not applicable to detected languages (%s)", strings.Join(repo.Languages, ", "))
		return rec
	}

	checkCtx, cancel := context.WithTimeout(ctx, cfg.CheckTimeout)
	defer cancel()

	outcome, err := chk.Assess(checkCtx, repo)
	switch {
	case err == nil:
		rec.Status = outcome.Status
		rec.Evidence = outcome.Evidence
		if rec.HasScore() {
			rec.Score = clampScore(chk.AttributeID(), outcome.Score)
		}

	case errors.Is(err, context.DeadlineExceeded):
		rec.Status = schema.ErrorStatus
		rec.Evidence = fmt.Sprintf("check timed out after %s", cfg.CheckTimeout)

	default:
		if ce, ok := contract.AsMissingTool(err); ok {
			rec.Status = schema.SkippedStatus
			rec.Evidence = fmt.Sprintf("missing tool %q; %s", ce.Tool, ce.Hint)
		} else {
			rec.Status = schema.ErrorStatus
			rec.Evidence = sanitizeMessage(err.Error())
		}
	}

	return rec
}

// newRecord seeds a record with the attribute metadata for a check. Checks
// not present in the catalog fall back to tier-derived defaults so they can
// still be scored.
func newRecord(chk contract.Check, attrs schema.AttributeIndex) schema.ResultRecord {
	id := chk.AttributeID()
	if attr, ok := attrs[id]; ok {
		return schema.ResultRecord{
			AttributeID: id,
			Name:        attr.Name,
			Category:    attr.Category,
			Tier:        attr.Tier,
			Weight:      attr.EffectiveDefaultWeight(),
		}
	}
	return schema.ResultRecord{
		AttributeID: id,
		Name:        id,
		Tier:        chk.Tier(),
		Weight:      schema.GetDefaultWeight(chk.Tier()),
	}
}

// sanitizeMessage keeps the first line of a failure message and truncates
// it, so stack traces and multi-line tool output stay out of records.
func sanitizeMessage(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	if len(msg) > maxEvidenceLen {
		msg = msg[:maxEvidenceLen] + "..."
	}
	return msg
}
