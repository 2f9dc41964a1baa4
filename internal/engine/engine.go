package engine

import (
	"time"

	"github.com/google/uuid"

	"kinship-engine/internal/classified"
	"kinship-engine/internal/inference"
	"kinship-engine/internal/model"
)

// InferFromFlatRecords builds a forest from raw household records using the
// name, age and gender heuristics. Every member is reachable exactly once
// from the returned roots; roots naming the same absent relative hang under
// one virtual ancestor.
func InferFromFlatRecords(req *model.InferRequest) *model.TreeResponse {
	start := time.Now()

	forest, msgs := inference.Build(req.Members)

	return finish(start, req.HouseholdID, model.PathInferred, forest.View(), msgs)
}

// AssembleFromClassifiedEdges builds a single head-centric tree from
// classifier edges. Edges that cannot be placed are reported as warnings; a
// household without a head fails with a CRITICAL message and no roots.
func AssembleFromClassifiedEdges(req *model.ClassifiedRequest) *model.TreeResponse {
	start := time.Now()

	head, msgs, err := classified.Assemble(req.Household)
	if err != nil {
		msgs = append(msgs, model.Message{
			Level:   model.LevelCritical,
			Code:    model.CodeNoHead,
			Message: err.Error(),
		})
		return finish(start, req.HouseholdID, model.PathClassified, []*model.ViewNode{}, msgs)
	}

	return finish(start, req.HouseholdID, model.PathClassified, []*model.ViewNode{head}, msgs)
}

// Process dispatches a batch job to the builder matching its input shape.
func Process(job model.HouseholdJob) *model.TreeResponse {
	if job.Classified != nil {
		return AssembleFromClassifiedEdges(&model.ClassifiedRequest{
			HouseholdID: job.HouseholdID,
			Household:   *job.Classified,
		})
	}
	return InferFromFlatRecords(&model.InferRequest{
		HouseholdID: job.HouseholdID,
		Members:     job.Members,
	})
}

func finish(start time.Time, householdID, path string, roots []*model.ViewNode, msgs []model.Message) *model.TreeResponse {
	outcome := model.OutcomeSuccess
	for i := range msgs {
		msgs[i].ID = i
		switch msgs[i].Level {
		case model.LevelCritical:
			outcome = model.OutcomeFailure
		case model.LevelWarning:
			if outcome == model.OutcomeSuccess {
				outcome = model.OutcomePartial
			}
		}
	}
	if msgs == nil {
		msgs = []model.Message{}
	}

	stats := treeStats(roots)
	elapsed := time.Since(start)
	now := time.Now().UTC()

	observe(path, outcome, elapsed, stats, msgs)

	return &model.TreeResponse{
		Metadata: model.TreeMetadata{
			RequestID:   uuid.New().String(),
			HouseholdID: householdID,
			Path:        path,
			StartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CompletedAt: now.Format(time.RFC3339),
			DurationMs:  elapsed.Milliseconds(),
			Outcome:     outcome,
		},
		Result: model.TreeResult{
			Roots:    roots,
			Messages: msgs,
			Stats:    stats,
		},
	}
}

func treeStats(roots []*model.ViewNode) model.TreeStats {
	s := model.TreeStats{Roots: len(roots)}
	for _, r := range roots {
		r.Walk(func(n *model.ViewNode) {
			if n.IsVirtual {
				s.Virtual++
			} else {
				s.Members++
			}
		})
		if d := r.Depth(); d > s.Generations {
			s.Generations = d
		}
	}
	return s
}
