// Package memory is a process-local implementation of the repository
// interfaces. It backs tests and `serve --in-memory`.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"visitor-management/models"
	"visitor-management/repository"
)

// Store holds every collection behind a single lock, so guarded transitions
// are atomic with respect to each other.
type Store struct {
	mu           sync.Mutex
	users        map[primitive.ObjectID]models.User
	visits       map[primitive.ObjectID]models.Visit
	preApprovals map[primitive.ObjectID]models.PreApproval
}

func New() *Store {
	return &Store{
		users:        make(map[primitive.ObjectID]models.User),
		visits:       make(map[primitive.ObjectID]models.Visit),
		preApprovals: make(map[primitive.ObjectID]models.PreApproval),
	}
}

func (s *Store) Users() repository.UserRepository { return &userStore{s} }

func (s *Store) Visits() repository.VisitRepository { return &visitStore{s} }

func (s *Store) PreApprovals() repository.PreApprovalRepository { return &preApprovalStore{s} }

type userStore struct{ s *Store }

func (r *userStore) CreateUser(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.insert(user)
}

func (r *userStore) CreateFirstAdmin(_ context.Context, user *models.User) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Role == models.RoleAdmin {
			return false, nil
		}
	}
	if err := r.insert(user); err != nil {
		return false, err
	}
	return true, nil
}

// insert must be called with the lock held.
func (r *userStore) insert(user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	return nil
}

func (r *userStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email = strings.ToLower(email)
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userStore) FindUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userStore) GetAllUsers(_ context.Context, role models.Role) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users := []models.User{}
	for _, u := range r.s.users {
		if role == "" || u.Role == role {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r *userStore) CountByRole(_ context.Context, role models.Role) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, u := range r.s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *userStore) update(id primitive.ObjectID, fn func(u *models.User)) (*models.User, bool) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, false
	}
	fn(&u)
	r.s.users[id] = u
	return &u, true
}

func (r *userStore) UpdateRole(_ context.Context, id primitive.ObjectID, role models.Role, department string) (bool, error) {
	_, ok := r.update(id, func(u *models.User) {
		u.Role = role
		if department != "" {
			u.Department = department
		}
		u.UpdatedAt = time.Now()
	})
	return ok, nil
}

func (r *userStore) SetActive(_ context.Context, id primitive.ObjectID, active bool) (bool, error) {
	_, ok := r.update(id, func(u *models.User) {
		u.IsActive = active
		u.UpdatedAt = time.Now()
	})
	return ok, nil
}

func (r *userStore) UpdateLastLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	r.update(id, func(u *models.User) { u.LastLogin = &at })
	return nil
}

func (r *userStore) UpdatePassword(_ context.Context, id primitive.ObjectID, hashedPassword string) error {
	r.update(id, func(u *models.User) {
		u.Password = hashedPassword
		u.UpdatedAt = time.Now()
	})
	return nil
}

func (r *userStore) UpdateProfile(_ context.Context, id primitive.ObjectID, payload models.UserUpdatePayload) (*models.User, error) {
	u, _ := r.update(id, func(u *models.User) {
		if payload.Name != "" {
			u.Name = payload.Name
		}
		if payload.Phone != "" {
			u.Phone = payload.Phone
		}
		if payload.Company != "" {
			u.Company = payload.Company
		}
		if payload.Department != "" {
			u.Department = payload.Department
		}
		u.UpdatedAt = time.Now()
	})
	return u, nil
}

func (r *userStore) UpdatePhoto(_ context.Context, id primitive.ObjectID, photo string) error {
	r.update(id, func(u *models.User) {
		u.Photo = photo
		u.UpdatedAt = time.Now()
	})
	return nil
}

type visitStore struct{ s *Store }

func (r *visitStore) Create(_ context.Context, visit *models.Visit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if visit.ID.IsZero() {
		visit.ID = primitive.NewObjectID()
	}
	if visit.CreatedAt.IsZero() {
		visit.CreatedAt = time.Now()
	}
	visit.UpdatedAt = visit.CreatedAt
	r.s.visits[visit.ID] = *visit
	return nil
}

func (r *visitStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Visit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.visits[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *visitStore) FindRedeemable(_ context.Context, passcode string, notBefore time.Time) (*models.Visit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var found *models.Visit
	for _, v := range r.s.visits {
		if v.Passcode != passcode || v.Status != models.VisitApproved || v.VisitDate.Before(notBefore) {
			continue
		}
		if found == nil || v.VisitDate.Before(found.VisitDate) {
			v := v
			found = &v
		}
	}
	return found, nil
}

func (r *visitStore) FindByVisitor(_ context.Context, visitorID primitive.ObjectID) ([]models.Visit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	visits := []models.Visit{}
	for _, v := range r.s.visits {
		if v.VisitorID == visitorID {
			visits = append(visits, v)
		}
	}
	sort.Slice(visits, func(i, j int) bool { return visits[i].VisitDate.After(visits[j].VisitDate) })
	return visits, nil
}

func (r *visitStore) List(_ context.Context, filter models.VisitFilter) ([]models.VisitWithVisitor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	results := []models.VisitWithVisitor{}
	for _, v := range r.s.visits {
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		if !filter.From.IsZero() && v.VisitDate.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && v.VisitDate.After(filter.To) {
			continue
		}
		row := models.VisitWithVisitor{Visit: v}
		if u, ok := r.s.users[v.VisitorID]; ok {
			row.VisitorPhoto = u.Photo
		}
		results = append(results, row)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].VisitDate.After(results[j].VisitDate) })
	return results, nil
}

func (r *visitStore) Transition(_ context.Context, id primitive.ObjectID, t models.VisitTransition) (*models.Visit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.visits[id]
	if !ok || !v.Apply(t) {
		return nil, nil
	}
	r.s.visits[id] = v
	return &v, nil
}

func (r *visitStore) Stats(_ context.Context, dayStart, dayEnd time.Time) (*models.VisitStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stats := &models.VisitStats{
		ByStatus:               []models.StatusCount{},
		DepartmentDistribution: []models.DepartmentCount{},
	}
	byStatus := map[models.VisitStatus]int64{}
	byDept := map[string]int64{}

	for _, v := range r.s.visits {
		stats.TotalVisits++
		byStatus[v.Status]++
		if !v.VisitDate.Before(dayStart) && !v.VisitDate.After(dayEnd) {
			stats.TodayVisits++
		}
		if v.Host.Department != "" {
			byDept[v.Host.Department]++
		}
	}

	for status, n := range byStatus {
		stats.ByStatus = append(stats.ByStatus, models.StatusCount{Status: status, Count: n})
	}
	sort.Slice(stats.ByStatus, func(i, j int) bool { return stats.ByStatus[i].Status < stats.ByStatus[j].Status })
	stats.CurrentlyCheckedIn = byStatus[models.VisitCheckedIn]
	stats.PendingApprovals = byStatus[models.VisitPending]

	for dept, n := range byDept {
		stats.DepartmentDistribution = append(stats.DepartmentDistribution, models.DepartmentCount{Department: dept, Count: n})
	}
	sort.Slice(stats.DepartmentDistribution, func(i, j int) bool {
		a, b := stats.DepartmentDistribution[i], stats.DepartmentDistribution[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Department < b.Department
	})

	return stats, nil
}

type preApprovalStore struct{ s *Store }

func (r *preApprovalStore) Create(_ context.Context, p *models.PreApproval) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = p.CreatedAt
	r.s.preApprovals[p.ID] = *p
	return nil
}

func (r *preApprovalStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.PreApproval, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.preApprovals[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *preApprovalStore) FindActiveByPasscode(_ context.Context, passcode string) ([]models.PreApproval, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := []models.PreApproval{}
	for _, p := range r.s.preApprovals {
		if p.Passcode == passcode && p.Status == models.PreApprovalActive {
			list = append(list, p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ValidFrom.Before(list[j].ValidFrom) })
	return list, nil
}

func (r *preApprovalStore) List(_ context.Context) ([]models.PreApproval, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := []models.PreApproval{}
	for _, p := range r.s.preApprovals {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *preApprovalStore) Transition(_ context.Context, id primitive.ObjectID, t models.PreApprovalTransition) (*models.PreApproval, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.preApprovals[id]
	if !ok || p.Status != t.From {
		return nil, nil
	}
	at := t.At
	p.Status = t.To
	p.UpdatedAt = at
	switch t.To {
	case models.PreApprovalUsed:
		p.UsedAt = &at
		if t.UsedBy != nil {
			by := *t.UsedBy
			p.UsedBy = &by
		}
	case models.PreApprovalActive:
		p.UsedAt = nil
		p.UsedBy = nil
	}
	r.s.preApprovals[id] = p
	return &p, nil
}

func (r *preApprovalStore) AttachVisit(_ context.Context, id, visitID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p, ok := r.s.preApprovals[id]; ok {
		p.VisitID = &visitID
		p.UpdatedAt = time.Now()
		r.s.preApprovals[id] = p
	}
	return nil
}

func (r *preApprovalStore) ExpireStale(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, p := range r.s.preApprovals {
		if p.Status == models.PreApprovalActive && !p.ValidUntil.After(now) {
			p.Status = models.PreApprovalExpired
			p.UpdatedAt = now
			r.s.preApprovals[id] = p
			n++
		}
	}
	return n, nil
}

func (r *preApprovalStore) CountActive(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, p := range r.s.preApprovals {
		if p.Status == models.PreApprovalActive {
			n++
		}
	}
	return n, nil
}
