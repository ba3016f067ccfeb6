package roster

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	rostererrors "go-grafik/internal/roster/errors"
	"go-grafik/internal/shared/apperror"
	"go-grafik/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const OptionsKeyPrefix = "roster:options:"

func GetOptionsKey(group string) string {
	return OptionsKeyPrefix + group
}

const examSoonDays = 30

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidEmail reports whether s looks like a deliverable address.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// GroupLookup tells whether a group is registered.
type GroupLookup interface {
	Exists(ctx context.Context, name string) (bool, error)
}

//go:generate mockgen -source=roster_service.go -destination=mock/roster_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, group, q string) ([]ProfileResponse, error)
	Names(ctx context.Context, group string) ([]string, error)
	Profiles(ctx context.Context, group string) ([]Profile, error)
	Options(ctx context.Context, group string) ([]string, error)
	Invalidate(ctx context.Context, groups ...string)

	Add(ctx context.Context, group, name string) (ProfileResponse, error)
	Remove(ctx context.Context, group, name string) error
	MoveUp(ctx context.Context, group, name string) error
	MoveDown(ctx context.Context, group, name string) error
	Edit(ctx context.Context, group, name string, req EditEmployeeRequest) (ProfileResponse, error)
	Transfer(ctx context.Context, group, name, targetGroup string) error

	GetProfile(ctx context.Context, group, name string) (ProfileDetailResponse, error)
	UpdateProfile(ctx context.Context, group, name string, req UpdateProfileRequest) (ProfileResponse, error)

	ListSkills(ctx context.Context) ([]string, error)
	AddSkill(ctx context.Context, name string) (string, error)
	DeleteSkill(ctx context.Context, name string) error

	ExportCSV(ctx context.Context, group string) ([]byte, string, error)
	ImportCSV(ctx context.Context, group string, r io.Reader) (ImportResult, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	groups   GroupLookup
	rdb      *redis.Client
	sf       *singleflight.Group
	cacheTTL time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, groups GroupLookup, rdb *redis.Client, cacheTTL time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("roster.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("roster.service")
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &service{
		db:       db,
		repo:     repo,
		groups:   groups,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		cacheTTL: cacheTTL,
		now:      time.Now,
		logger:   l,
	}
}

// load reads a roster through repo. A missing roster is empty and an
// unreadable one is logged and treated as empty. Legacy entries are
// rewritten in normalised form.
func (s *service) load(ctx context.Context, repo Repository, group string) ([]Profile, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	row, err := repo.Find(ctx, group)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []Profile{}, nil
		}
		return nil, err
	}

	profiles, migrated, err := DecodeRoster([]byte(row.Payload))
	if err != nil {
		logger.Warn("malformed roster document, treating as empty",
			zap.String("group", group),
			zap.Error(err),
		)
		return []Profile{}, nil
	}

	if migrated {
		if err := s.store(ctx, repo, group, profiles); err != nil {
			return nil, err
		}
		logger.Info("roster migrated to profile format", zap.String("group", group))
	}
	return profiles, nil
}

func (s *service) store(ctx context.Context, repo Repository, group string, profiles []Profile) error {
	payload, err := EncodeRoster(profiles)
	if err != nil {
		return err
	}
	return repo.Upsert(ctx, &Document{GroupName: group, Payload: string(payload)})
}

// mutate runs a read-modify-write of one roster inside a transaction.
func (s *service) mutate(ctx context.Context, group, op string, fn func([]Profile) ([]Profile, error)) error {
	logger := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error(op+" begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	profiles, err := s.load(ctx, qtx, group)
	if err != nil {
		return err
	}

	updated, err := fn(profiles)
	if err != nil {
		return err
	}

	if err := s.store(ctx, qtx, group, updated); err != nil {
		logger.Error(op+" store failed", zap.String("group", group), zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.Invalidate(ctx, group)
	return nil
}

func (s *service) Invalidate(ctx context.Context, groups ...string) {
	if s.rdb == nil {
		return
	}
	for _, g := range groups {
		cacheKey := GetOptionsKey(g)
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate roster options cache",
				zap.Error(err),
				zap.String("key", cacheKey),
			)
		}
	}
}

func (s *service) List(ctx context.Context, group, q string) ([]ProfileResponse, error) {
	profiles, err := s.load(ctx, s.repo, group)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(q))
	resp := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		resp = append(resp, s.toResponse(p))
	}
	return resp, nil
}

func (s *service) Names(ctx context.Context, group string) ([]string, error) {
	profiles, err := s.load(ctx, s.repo, group)
	if err != nil {
		return nil, err
	}
	return profileNames(profiles), nil
}

func (s *service) Profiles(ctx context.Context, group string) ([]Profile, error) {
	return s.load(ctx, s.repo, group)
}

func (s *service) Options(ctx context.Context, group string) ([]string, error) {
	cacheKey := GetOptionsKey(group)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var names []string
			if json.Unmarshal([]byte(cached), &names) == nil {
				return names, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		profiles, err := s.load(ctx, s.repo, group)
		if err != nil {
			return nil, err
		}

		names := profileNames(profiles)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(names); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, s.cacheTTL)
			}
		}
		return names, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]string), nil
}

func (s *service) Add(ctx context.Context, group, name string) (ProfileResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ProfileResponse{}, rostererrors.ErrNameRequired
	}

	p := NewProfile(name)
	err := s.mutate(ctx, group, "add employee", func(profiles []Profile) ([]Profile, error) {
		if indexOf(profiles, name) >= 0 {
			return nil, rostererrors.ErrEmployeeAlreadyExists
		}
		return append(profiles, p), nil
	})
	if err != nil {
		return ProfileResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("employee added",
		zap.String("group", group),
		zap.String("employee", name),
	)
	return s.toResponse(p), nil
}

func (s *service) Remove(ctx context.Context, group, name string) error {
	err := s.mutate(ctx, group, "remove employee", func(profiles []Profile) ([]Profile, error) {
		idx := indexOf(profiles, name)
		if idx < 0 {
			return nil, rostererrors.ErrEmployeeNotFound
		}
		return append(profiles[:idx], profiles[idx+1:]...), nil
	})
	if err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("employee removed",
		zap.String("group", group),
		zap.String("employee", name),
	)
	return nil
}

func (s *service) MoveUp(ctx context.Context, group, name string) error {
	return s.move(ctx, group, name, -1)
}

func (s *service) MoveDown(ctx context.Context, group, name string) error {
	return s.move(ctx, group, name, 1)
}

// move swaps the employee with a neighbour. Moving past either end is a no-op.
func (s *service) move(ctx context.Context, group, name string, delta int) error {
	return s.mutate(ctx, group, "move employee", func(profiles []Profile) ([]Profile, error) {
		idx := indexOf(profiles, name)
		if idx < 0 {
			return nil, rostererrors.ErrEmployeeNotFound
		}
		j := idx + delta
		if j >= 0 && j < len(profiles) {
			profiles[idx], profiles[j] = profiles[j], profiles[idx]
		}
		return profiles, nil
	})
}

func (s *service) Edit(ctx context.Context, group, name string, req EditEmployeeRequest) (ProfileResponse, error) {
	newName := strings.TrimSpace(req.Name)
	if newName == "" {
		return ProfileResponse{}, rostererrors.ErrNameRequired
	}

	var edited Profile
	err := s.mutate(ctx, group, "edit employee", func(profiles []Profile) ([]Profile, error) {
		idx := indexOf(profiles, name)
		if idx < 0 {
			return nil, rostererrors.ErrEmployeeNotFound
		}
		if newName != name && indexOf(profiles, newName) >= 0 {
			return nil, rostererrors.ErrEmployeeAlreadyExists
		}

		profiles[idx].Name = newName
		profiles[idx].Position = strings.TrimSpace(req.Position)
		profiles[idx].Contact = strings.TrimSpace(req.Contact)
		edited = profiles[idx]
		return profiles, nil
	})
	if err != nil {
		return ProfileResponse{}, err
	}
	return s.toResponse(edited), nil
}

// Transfer moves an employee with the whole profile to another group. Both
// rosters are written in one transaction.
func (s *service) Transfer(ctx context.Context, group, name, targetGroup string) error {
	logger := contextutil.GetLogger(ctx, s.logger)

	targetGroup = strings.TrimSpace(targetGroup)
	if targetGroup == "" {
		return apperror.RequiredField("target_group")
	}
	if targetGroup == group {
		return rostererrors.ErrSameGroup
	}
	exists, err := s.groups.Exists(ctx, targetGroup)
	if err != nil {
		logger.Error("transfer target lookup failed", zap.String("target", targetGroup), zap.Error(err))
		return err
	}
	if !exists {
		return rostererrors.ErrTargetGroupNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("transfer begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	source, err := s.load(ctx, qtx, group)
	if err != nil {
		return err
	}
	idx := indexOf(source, name)
	if idx < 0 {
		return rostererrors.ErrEmployeeNotFound
	}

	target, err := s.load(ctx, qtx, targetGroup)
	if err != nil {
		return err
	}
	if indexOf(target, name) >= 0 {
		return rostererrors.ErrEmployeeExistsInTarget
	}

	moved := source[idx]
	source = append(source[:idx], source[idx+1:]...)
	target = append(target, moved)

	if err := s.store(ctx, qtx, group, source); err != nil {
		logger.Error("transfer store source failed", zap.Error(err))
		return err
	}
	if err := s.store(ctx, qtx, targetGroup, target); err != nil {
		logger.Error("transfer store target failed", zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.Invalidate(ctx, group, targetGroup)
	logger.Info("employee transferred",
		zap.String("employee", name),
		zap.String("from", group),
		zap.String("to", targetGroup),
	)
	return nil
}

func (s *service) GetProfile(ctx context.Context, group, name string) (ProfileDetailResponse, error) {
	profiles, err := s.load(ctx, s.repo, group)
	if err != nil {
		return ProfileDetailResponse{}, err
	}
	idx := indexOf(profiles, name)
	if idx < 0 {
		return ProfileDetailResponse{}, rostererrors.ErrEmployeeNotFound
	}

	catalog, err := s.ListSkills(ctx)
	if err != nil {
		return ProfileDetailResponse{}, err
	}

	return ProfileDetailResponse{
		Profile: s.toResponse(profiles[idx]),
		Catalog: catalog,
	}, nil
}

// UpdateProfile validates and writes one profile. Skills are rebuilt over the
// whole catalog; a new skill joins the catalog only when the update succeeds.
func (s *service) UpdateProfile(ctx context.Context, group, name string, req UpdateProfileRequest) (ProfileResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	newName := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	exam := strings.TrimSpace(req.MedicalExam)
	newSkill := strings.TrimSpace(req.NewSkill)

	if newName == "" {
		return ProfileResponse{}, rostererrors.ErrNameRequired
	}
	if email != "" && !emailRe.MatchString(email) {
		return ProfileResponse{}, rostererrors.ErrInvalidEmail
	}
	if exam != "" && !dateRe.MatchString(exam) {
		return ProfileResponse{}, rostererrors.ErrInvalidExamDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("update profile begin tx failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	profiles, err := s.load(ctx, qtx, group)
	if err != nil {
		return ProfileResponse{}, err
	}
	idx := indexOf(profiles, name)
	if idx < 0 {
		return ProfileResponse{}, rostererrors.ErrEmployeeNotFound
	}
	if newName != name && indexOf(profiles, newName) >= 0 {
		return ProfileResponse{}, rostererrors.ErrEmployeeAlreadyExists
	}

	skills, err := qtx.ListSkills(ctx)
	if err != nil {
		return ProfileResponse{}, err
	}
	catalog := skillNames(skills)

	selected := make(map[string]bool, len(req.Skills)+1)
	for _, sk := range req.Skills {
		selected[strings.TrimSpace(sk)] = true
	}

	if newSkill != "" {
		existing, ok := findFold(catalog, newSkill)
		if !ok {
			if err := qtx.CreateSkill(ctx, &Skill{Name: newSkill}); err != nil {
				return ProfileResponse{}, mapRepositoryError(err)
			}
			catalog = append(catalog, newSkill)
			existing = newSkill
		}
		selected[existing] = true
	}

	set := NewSkillSet()
	for _, sk := range catalog {
		set.Set(sk, selected[sk])
	}

	p := &profiles[idx]
	p.Name = newName
	p.Position = strings.TrimSpace(req.Position)
	p.Contact = strings.TrimSpace(req.Contact)
	p.Email = email
	p.MedicalExam = exam
	p.Skills = set

	if err := s.store(ctx, qtx, group, profiles); err != nil {
		logger.Error("update profile store failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ProfileResponse{}, err
	}

	if newName != name {
		s.Invalidate(ctx, group)
	}

	logger.Info("profile updated",
		zap.String("group", group),
		zap.String("employee", newName),
	)
	return s.toResponse(*p), nil
}

func (s *service) ListSkills(ctx context.Context) ([]string, error) {
	skills, err := s.repo.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	return skillNames(skills), nil
}

func (s *service) AddSkill(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.RequiredField("name")
	}

	skills, err := s.repo.ListSkills(ctx)
	if err != nil {
		return "", err
	}
	if _, ok := findFold(skillNames(skills), name); ok {
		return "", rostererrors.ErrSkillAlreadyExists
	}

	if err := s.repo.CreateSkill(ctx, &Skill{Name: name}); err != nil {
		return "", mapRepositoryError(err)
	}
	return name, nil
}

// DeleteSkill drops a skill from the catalog and from every profile in every
// group, matching case-insensitively.
func (s *service) DeleteSkill(ctx context.Context, name string) error {
	logger := contextutil.GetLogger(ctx, s.logger)

	name = strings.TrimSpace(name)
	if name == "" {
		return apperror.RequiredField("name")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("delete skill begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	deleted, err := qtx.DeleteSkill(ctx, name)
	if err != nil {
		return mapRepositoryError(err)
	}

	docs, err := qtx.ListDocuments(ctx)
	if err != nil {
		return err
	}

	touched := 0
	for _, doc := range docs {
		profiles, _, err := DecodeRoster([]byte(doc.Payload))
		if err != nil {
			continue
		}
		changed := false
		for i := range profiles {
			var removed bool
			profiles[i].Skills, removed = profiles[i].Skills.Without(name)
			changed = changed || removed
		}
		if !changed {
			continue
		}
		if err := s.store(ctx, qtx, doc.GroupName, profiles); err != nil {
			logger.Error("delete skill store failed", zap.String("group", doc.GroupName), zap.Error(err))
			return err
		}
		touched++
	}

	if deleted == 0 && touched == 0 {
		return rostererrors.ErrSkillNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	logger.Info("skill deleted",
		zap.String("skill", name),
		zap.Int("groups", touched),
	)
	return nil
}

func (s *service) ExportCSV(ctx context.Context, group string) ([]byte, string, error) {
	profiles, err := s.load(ctx, s.repo, group)
	if err != nil {
		return nil, "", err
	}

	body, err := writeProfileCSV(profiles)
	if err != nil {
		return nil, "", err
	}

	fileName := fmt.Sprintf("%s_profile_%s.csv", slugify(group), s.now().Format(dateLayout))
	return body, fileName, nil
}

// ImportCSV merges profile rows into the roster. Unknown names are appended.
// A non-empty skills cell replaces the employee's skills and extends the catalog.
func (s *service) ImportCSV(ctx context.Context, group string, r io.Reader) (ImportResult, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	rows, err := readProfileCSV(r)
	if err != nil {
		return ImportResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	profiles, err := s.load(ctx, qtx, group)
	if err != nil {
		return ImportResult{}, err
	}

	skills, err := qtx.ListSkills(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	catalog := skillNames(skills)

	imported := 0
	for _, row := range rows {
		name := row.fields["name"]
		if name == "" {
			continue
		}

		idx := indexOf(profiles, name)
		if idx < 0 {
			profiles = append(profiles, NewProfile(name))
			idx = len(profiles) - 1
		}
		p := &profiles[idx]

		if v, ok := row.fields["position"]; ok {
			p.Position = v
		}
		if v, ok := row.fields["contact"]; ok {
			p.Contact = v
		}
		if v, ok := row.fields["email"]; ok {
			p.Email = v
		}
		if v := row.fields["medical_exam"]; v != "" {
			p.MedicalExam = normalizeExamDate(v)
		}

		if v := row.fields["skills"]; v != "" {
			chosen := map[string]bool{}
			for _, tok := range splitSkills(v) {
				chosen[strings.ToLower(tok)] = true
				if _, ok := findFold(catalog, tok); !ok {
					if err := qtx.CreateSkill(ctx, &Skill{Name: tok}); err != nil {
						return ImportResult{}, mapRepositoryError(err)
					}
					catalog = append(catalog, tok)
				}
			}
			set := NewSkillSet()
			for _, sk := range catalog {
				set.Set(sk, chosen[strings.ToLower(sk)])
			}
			p.Skills = set
		}
		imported++
	}

	if err := s.store(ctx, qtx, group, profiles); err != nil {
		logger.Error("import profiles store failed", zap.Error(err))
		return ImportResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return ImportResult{}, err
	}

	s.Invalidate(ctx, group)
	logger.Info("profiles imported", zap.String("group", group), zap.Int("rows", imported))
	return ImportResult{Imported: imported}, nil
}

func (s *service) toResponse(p Profile) ProfileResponse {
	resp := ProfileResponse{
		Name:        p.Name,
		Position:    p.Position,
		Contact:     p.Contact,
		Email:       p.Email,
		MedicalExam: p.MedicalExam,
		Skills:      p.Skills,
	}
	if days, ok := p.ExamDaysLeft(s.now()); ok {
		resp.ExamDaysLeft = &days
		resp.ExamSoon = days >= 0 && days <= examSoonDays
	}
	return resp
}

func profileNames(profiles []Profile) []string {
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	return names
}

func skillNames(skills []Skill) []string {
	names := make([]string, 0, len(skills))
	for _, sk := range skills {
		names = append(names, sk.Name)
	}
	return names
}

func findFold(names []string, name string) (string, bool) {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return n, true
		}
	}
	return "", false
}
