package assessment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

// maxContribution is the total weight a subject's components may claim.
const maxContribution = 100.0

var (
	// errors
	ErrSubjectNotFound      = core.NewNotFoundError("subject with the ID not found")
	ErrNotFound             = core.NewNotFoundError("assessment not found")
	ErrExists               = core.NewConflictError("assessment already present")
	ErrContributionExceeded = core.NewInvariantError("total contribution exceeds 100%")
)

type (
	// SubjectLookup reports subject existence; the catalog itself is owned elsewhere.
	SubjectLookup interface {
		Exists(ctx context.Context, subjectID string) (bool, error)
	}

	Repository interface {
		CreateComponent(ctx context.Context, comp Component) (Component, error)
		QueryAllComponents(ctx context.Context) ([]Component, error)
		GetComponentByID(ctx context.Context, id string) (Component, error)
		GetComponentByIdentity(ctx context.Context, componentID, subjectID string) (Component, error)
		FilterComponents(ctx context.Context, filter QueryFilter) ([]Component, error)
		QueryComponentsBySubject(ctx context.Context, subjectID string) ([]Component, error)
		// UpdateComponent replaces the whole stored component document.
		UpdateComponent(ctx context.Context, comp Component) (Component, error)
		DeleteComponent(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, nc NewComponent) (Component, error)
		QueryAll(ctx context.Context) ([]Component, error)
		Filter(ctx context.Context, filter *QueryFilter) ([]Component, error)
		GetByID(ctx context.Context, id string) (Component, error)
		// QueryBySubject returns the subject's components along with their
		// current contribution sum, for auditing remaining headroom.
		QueryBySubject(ctx context.Context, subjectID string) ([]Component, float64, error)
		Update(ctx context.Context, id string, nc NewComponent) (Component, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo     Repository
		subjects SubjectLookup
		locks    *subjectLocks
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, subjects SubjectLookup) Service {
	return &service{
		repo:     repo,
		subjects: subjects,
		locks:    &subjectLocks{locks: make(map[string]*sync.Mutex)},
	}
}

// subjectLocks serializes the contribution check-then-write per subject:
// the sum check and the subsequent insert/update are two separate store
// operations, so two concurrent writers on the same subject could otherwise
// both observe a sum that makes their own contribution legal.
type subjectLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lock acquires the locks of the given subjects in a stable order and
// returns the matching unlock function.
func (sl *subjectLocks) lock(subjectIDs ...string) (unlock func()) {
	ids := make([]string, 0, len(subjectIDs))
	seen := make(map[string]bool, len(subjectIDs))
	for _, id := range subjectIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	locked := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		sl.mu.Lock()
		mu, ok := sl.locks[id]
		if !ok {
			mu = new(sync.Mutex)
			sl.locks[id] = mu
		}
		sl.mu.Unlock()

		mu.Lock()
		locked = append(locked, mu)
	}
	return func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].Unlock()
		}
	}
}

func (svc *service) checkSubject(ctx context.Context, subjectID string) error {
	exists, err := svc.subjects.Exists(ctx, subjectID)
	if err != nil {
		return errors.Wrap(err, "checking subject existence")
	}
	if !exists {
		return ErrSubjectNotFound
	}
	return nil
}

func (svc *service) Create(ctx context.Context, nc NewComponent) (Component, error) {
	unlock := svc.locks.lock(nc.SubjectID)
	defer unlock()

	if err := svc.checkSubject(ctx, nc.SubjectID); err != nil {
		return Component{}, err
	}

	if _, err := svc.repo.GetComponentByIdentity(ctx, nc.ComponentID, nc.SubjectID); err == nil {
		return Component{}, ErrExists
	} else if errors.Cause(err) != ErrNotFound {
		return Component{}, err
	}

	siblings, err := svc.repo.QueryComponentsBySubject(ctx, nc.SubjectID)
	if err != nil {
		return Component{}, err
	}
	// a sum of exactly 100 is fine; anything above is not
	if ContributionSum(siblings)+float64(nc.Contribution) > maxContribution {
		return Component{}, ErrContributionExceeded
	}

	now := time.Now().UTC()
	comp := Component{
		ComponentID:   nc.ComponentID,
		SubjectID:     nc.SubjectID,
		Kind:          nc.Kind,
		OccursOn:      nc.OccursOn,
		Tag:           nc.Tag,
		MaxScore:      nc.MaxScore,
		MandatoryPass: nc.MandatoryPass,
		Contribution:  nc.Contribution,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return svc.repo.CreateComponent(ctx, comp)
}

func (svc *service) QueryAll(ctx context.Context) ([]Component, error) {
	return svc.repo.QueryAllComponents(ctx)
}

func (svc *service) Filter(ctx context.Context, filter *QueryFilter) ([]Component, error) {
	if filter == nil || filter.IsEmpty() {
		return svc.repo.QueryAllComponents(ctx)
	}
	return svc.repo.FilterComponents(ctx, *filter)
}

func (svc *service) GetByID(ctx context.Context, id string) (Component, error) {
	return svc.repo.GetComponentByID(ctx, id)
}

func (svc *service) QueryBySubject(ctx context.Context, subjectID string) ([]Component, float64, error) {
	if err := svc.checkSubject(ctx, subjectID); err != nil {
		return nil, 0, err
	}
	components, err := svc.repo.QueryComponentsBySubject(ctx, subjectID)
	if err != nil {
		return nil, 0, err
	}
	return components, ContributionSum(components), nil
}

func (svc *service) Update(ctx context.Context, id string, nc NewComponent) (Component, error) {
	old, err := svc.repo.GetComponentByID(ctx, id)
	if err != nil {
		return Component{}, err
	}

	unlock := svc.locks.lock(old.SubjectID, nc.SubjectID)
	defer unlock()

	if err := svc.checkSubject(ctx, nc.SubjectID); err != nil {
		return Component{}, err
	}

	// identity change: re-check uniqueness against the new identity
	if old.ComponentID != nc.ComponentID || old.SubjectID != nc.SubjectID {
		if other, err := svc.repo.GetComponentByIdentity(ctx, nc.ComponentID, nc.SubjectID); err == nil {
			if other.ID != old.ID {
				return Component{}, ErrExists
			}
		} else if errors.Cause(err) != ErrNotFound {
			return Component{}, err
		}
	}

	// the sum check excludes this component's own pre-update contribution
	siblings, err := svc.repo.QueryComponentsBySubject(ctx, nc.SubjectID)
	if err != nil {
		return Component{}, err
	}
	var sum float64
	for _, sib := range siblings {
		if sib.ID != old.ID {
			sum += float64(sib.Contribution)
		}
	}
	if sum+float64(nc.Contribution) > maxContribution {
		return Component{}, ErrContributionExceeded
	}

	old.ComponentID = nc.ComponentID
	old.SubjectID = nc.SubjectID
	old.Kind = nc.Kind
	old.OccursOn = nc.OccursOn
	old.Tag = nc.Tag
	old.MaxScore = nc.MaxScore
	old.MandatoryPass = nc.MandatoryPass
	old.Contribution = nc.Contribution
	old.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateComponent(ctx, old)
}

// Delete removes a component unconditionally. Marks records that reference it
// keep their stored totals; no reconciliation is attempted.
func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteComponent(ctx, id)
}
