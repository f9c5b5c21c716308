package connector

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sudomock-connector/internal/domain"
	"sudomock-connector/internal/providers/sudomock"
)

// API is the slice of the SudoMock client the runner drives. It exists so
// runs can be tested against a stub without a live transport.
type API interface {
	UploadTemplate(ctx context.Context, fileURL, name string) (map[string]any, error)
	Render(ctx context.Context, req sudomock.RenderRequest) (*sudomock.RenderResult, error)
	AccountInfo(ctx context.Context) (map[string]any, error)
	ListTemplates(ctx context.Context, query sudomock.ListQuery) (*sudomock.MockupPage, error)
	GetTemplate(ctx context.Context, uuid string) (map[string]any, error)
	UpdateTemplate(ctx context.Context, uuid, name string) (map[string]any, error)
	DeleteTemplate(ctx context.Context, uuid string) (map[string]any, error)
}

// Result is one output item. JSON is the decoded reply (or a structured
// error under continue-on-fail) and PairedItem points back at the input item
// that produced it.
type Result struct {
	JSON       map[string]any `json:"json"`
	PairedItem int            `json:"pairedItem"`
}

// RunOptions are per-run policies.
type RunOptions struct {
	// ContinueOnFail turns every failure into a structured output item
	// instead of aborting the run.
	ContinueOnFail bool
}

// Runner applies one operation to a batch of input items, strictly in
// sequence. Items share no state; each one is parsed and dispatched
// independently, one HTTP call (or pagination chain) at a time.
type Runner struct {
	api    API
	logger zerolog.Logger
}

// NewRunner wires a runner with its API client and logger.
func NewRunner(api API, logger zerolog.Logger) *Runner {
	return &Runner{api: api, logger: logger}
}

// Run executes op for every item. Non-list operations produce exactly one
// result per item; listTemplates fans out zero or more results per item.
func (r *Runner) Run(ctx context.Context, op domain.Operation, items []Item, opts RunOptions) ([]Result, error) {
	log := r.logger.With().
		Str("run_id", uuid.NewString()).
		Str("operation", op.String()).
		Logger()

	results := make([]Result, 0, len(items))
	for i, item := range items {
		outputs, err := r.runItem(ctx, op, item, i)
		if err != nil {
			errResult, fatal := classify(err, op, i, opts.ContinueOnFail)
			if fatal != nil {
				return nil, fatal
			}
			log.Warn().Err(err).Int("item", i).Msg("item failed, continuing")
			results = append(results, errResult)
			continue
		}
		results = append(results, outputs...)
	}
	log.Info().Int("items", len(items)).Int("results", len(results)).Msg("run complete")
	return results, nil
}

func (r *Runner) runItem(ctx context.Context, op domain.Operation, item Item, index int) ([]Result, error) {
	switch op {
	case domain.OpUploadTemplate:
		params, err := parseUploadParams(item)
		if err != nil {
			return nil, err
		}
		resp, err := r.api.UploadTemplate(ctx, params.PsdFileURL, params.PsdName)
		if err != nil {
			return nil, err
		}
		return []Result{{JSON: resp, PairedItem: index}}, nil

	case domain.OpRender:
		params, err := parseRenderParams(item)
		if err != nil {
			return nil, err
		}
		req := sudomock.BuildRenderRequest(params.MockupUUID, params.SmartObjects, params.Export)
		result, err := r.api.Render(ctx, req)
		if err != nil {
			return nil, err
		}
		return []Result{{JSON: FlattenRender(result), PairedItem: index}}, nil

	case domain.OpGetAccountInfo:
		resp, err := r.api.AccountInfo(ctx)
		if err != nil {
			return nil, err
		}
		return []Result{{JSON: resp, PairedItem: index}}, nil

	case domain.OpListTemplates:
		params, err := parseListParams(item)
		if err != nil {
			return nil, err
		}
		return r.listTemplates(ctx, params, index)

	case domain.OpGetTemplate:
		params, err := parseTemplateParams(item)
		if err != nil {
			return nil, err
		}
		resp, err := r.api.GetTemplate(ctx, params.MockupUUID)
		if err != nil {
			return nil, err
		}
		return []Result{{JSON: resp, PairedItem: index}}, nil

	case domain.OpUpdateTemplate:
		params, err := parseUpdateParams(item)
		if err != nil {
			return nil, err
		}
		resp, err := r.api.UpdateTemplate(ctx, params.MockupUUID, params.NewName)
		if err != nil {
			return nil, err
		}
		return []Result{{JSON: resp, PairedItem: index}}, nil

	case domain.OpDeleteTemplate:
		params, err := parseTemplateParams(item)
		if err != nil {
			return nil, err
		}
		resp, err := r.api.DeleteTemplate(ctx, params.MockupUUID)
		if err != nil {
			return nil, err
		}
		return []Result{{JSON: resp, PairedItem: index}}, nil
	}
	return nil, fmt.Errorf("unsupported operation %q", op)
}

// listTemplatesPageSize is the page size used when every record is wanted.
const listTemplatesPageSize = 100

// listTemplates pages through the listing and fans each record out as its
// own result. Without ReturnAll exactly one page is requested. With it, the
// loop stops when a page returns fewer records than the page size; an
// exact-full final page therefore costs one extra, empty request, which is
// the service's documented contract.
func (r *Runner) listTemplates(ctx context.Context, params ListParams, index int) ([]Result, error) {
	pageSize := params.Limit
	if params.ReturnAll {
		pageSize = listTemplatesPageSize
	}

	var collected []map[string]any
	offset := 0
	for {
		page, err := r.api.ListTemplates(ctx, sudomock.ListQuery{
			Limit:         pageSize,
			Offset:        offset,
			Name:          params.Name,
			CreatedAfter:  params.CreatedAfter,
			CreatedBefore: params.CreatedBefore,
			Sort:          params.Sort,
			Order:         params.Order,
		})
		if err != nil {
			return nil, err
		}
		collected = append(collected, page.Mockups...)
		if !params.ReturnAll || len(page.Mockups) < pageSize {
			break
		}
		offset += pageSize
	}

	results := make([]Result, 0, len(collected))
	for _, mockup := range collected {
		results = append(results, Result{JSON: mockup, PairedItem: index})
	}
	return results, nil
}
