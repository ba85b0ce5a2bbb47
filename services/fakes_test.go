package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/torneolink/backend/models"
	"github.com/torneolink/backend/repositories"
)

// fakeTxManager runs the unit directly; the nil executor makes fake repos
// use their own state, mirroring how the SQL repos fall back to the pool.
type fakeTxManager struct{}

func (fakeTxManager) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakeUserRepo struct {
	mu     sync.RWMutex
	nextID int
	users  map[int]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, _ repositories.SQLExecutor, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = r.nextID
	user.RegisteredAt = time.Now()
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id int, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

type fakeRoleRepo struct {
	mu          sync.RWMutex
	roles       map[models.RoleName]*models.Role
	assignments map[int][]int
}

func newFakeRoleRepo() *fakeRoleRepo {
	roles := map[models.RoleName]*models.Role{
		models.RoleAdministrator: {ID: 1, Name: models.RoleAdministrator},
		models.RoleCaptain:       {ID: 2, Name: models.RoleCaptain},
		models.RolePlayer:        {ID: 3, Name: models.RolePlayer},
		models.RoleReferee:       {ID: 4, Name: models.RoleReferee},
	}
	return &fakeRoleRepo{roles: roles, assignments: make(map[int][]int)}
}

func (r *fakeRoleRepo) GetByName(_ context.Context, name models.RoleName) (*models.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.roles[name]
	if !ok {
		return nil, repositories.ErrRoleNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *fakeRoleRepo) ListByUserID(_ context.Context, userID int) ([]models.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []models.Role
	for _, roleID := range r.assignments[userID] {
		for _, role := range r.roles {
			if role.ID == roleID {
				result = append(result, *role)
			}
		}
	}
	return result, nil
}

func (r *fakeRoleRepo) Assign(_ context.Context, _ repositories.SQLExecutor, userID, roleID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.assignments[userID] {
		if existing == roleID {
			return repositories.ErrRoleAssignmentConflict
		}
	}
	r.assignments[userID] = append(r.assignments[userID], roleID)
	return nil
}

type fakeTeamRepo struct {
	mu     sync.RWMutex
	nextID int
	teams  map[int]*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{nextID: 1, teams: make(map[int]*models.Team)}
}

func (r *fakeTeamRepo) Create(_ context.Context, _ repositories.SQLExecutor, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.teams {
		if existing.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	team.ID = r.nextID
	team.RegisteredAt = time.Now()
	r.nextID++
	clone := *team
	r.teams[team.ID] = &clone
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	clone := *team
	return &clone, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	clone := *team
	r.teams[team.ID] = &clone
	return nil
}

func (r *fakeTeamRepo) UpdateLogoKey(_ context.Context, id int, logoKey *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.LogoKey = logoKey
	return nil
}

func (r *fakeTeamRepo) List(_ context.Context) ([]*models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*models.Team
	for _, team := range r.teams {
		clone := *team
		result = append(result, &clone)
	}
	return result, nil
}

func (r *fakeTeamRepo) ListByCaptainID(_ context.Context, captainID int) ([]*models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*models.Team
	for _, team := range r.teams {
		if team.CaptainID == captainID {
			clone := *team
			result = append(result, &clone)
		}
	}
	return result, nil
}

type fakePlayerRepo struct {
	mu      sync.RWMutex
	nextID  int
	players map[int]*models.Player
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{nextID: 1, players: make(map[int]*models.Player)}
}

func (r *fakePlayerRepo) Create(_ context.Context, _ repositories.SQLExecutor, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	player.ID = r.nextID
	player.RegisteredAt = time.Now()
	r.nextID++
	clone := *player
	r.players[player.ID] = &clone
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	player, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	clone := *player
	return &clone, nil
}

func (r *fakePlayerRepo) GetByUserID(_ context.Context, userID int) (*models.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, player := range r.players {
		if player.UserID == userID {
			clone := *player
			return &clone, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) Update(_ context.Context, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	clone := *player
	r.players[player.ID] = &clone
	return nil
}

func (r *fakePlayerRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id int, status models.PlayerStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	player, ok := r.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	player.Status = status
	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

func (r *fakePlayerRepo) ListByTeamID(_ context.Context, teamID int) ([]*models.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*models.Player
	for _, player := range r.players {
		if player.TeamID == teamID {
			clone := *player
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakePlayerRepo) SquadNumberTaken(_ context.Context, teamID, number, excludePlayerID int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, player := range r.players {
		if player.TeamID == teamID && player.ID != excludePlayerID &&
			player.SquadNumber != nil && *player.SquadNumber == number {
			return true, nil
		}
	}
	return false, nil
}

type fakeTournamentRepo struct {
	mu          sync.RWMutex
	nextID      int
	tournaments map[int]*models.Tournament
	rules       map[int]*models.RuleSet
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{
		nextID:      1,
		tournaments: make(map[int]*models.Tournament),
		rules:       make(map[int]*models.RuleSet),
	}
}

func (r *fakeTournamentRepo) Create(_ context.Context, _ repositories.SQLExecutor, tournament *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.tournaments {
		if existing.Name == tournament.Name {
			return repositories.ErrTournamentNameConflict
		}
	}
	tournament.ID = r.nextID
	tournament.CreatedAt = time.Now()
	r.nextID++
	clone := *tournament
	r.tournaments[tournament.ID] = &clone
	return nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tournament, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	clone := *tournament
	return &clone, nil
}

func (r *fakeTournamentRepo) Update(_ context.Context, tournament *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tournaments[tournament.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	clone := *tournament
	r.tournaments[tournament.ID] = &clone
	return nil
}

func (r *fakeTournamentRepo) ListActive(_ context.Context) ([]*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*models.Tournament
	for _, tournament := range r.tournaments {
		if tournament.Active {
			clone := *tournament
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeTournamentRepo) CreateRuleSet(_ context.Context, _ repositories.SQLExecutor, rules *models.RuleSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rules.ID = len(r.rules) + 1
	clone := *rules
	r.rules[rules.TournamentID] = &clone
	return nil
}

func (r *fakeTournamentRepo) GetRuleSet(_ context.Context, _ repositories.SQLExecutor, tournamentID int) (*models.RuleSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rules, ok := r.rules[tournamentID]
	if !ok {
		return nil, repositories.ErrRuleSetNotFound
	}
	clone := *rules
	return &clone, nil
}

func (r *fakeTournamentRepo) UpdateRuleSet(_ context.Context, rules *models.RuleSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rules[rules.TournamentID]; !ok {
		return repositories.ErrRuleSetNotFound
	}
	clone := *rules
	r.rules[rules.TournamentID] = &clone
	return nil
}

type fakeEnrollmentRepo struct {
	mu          sync.RWMutex
	nextID      int
	enrollments map[int]*models.Enrollment
	teamRepo    *fakeTeamRepo
}

func newFakeEnrollmentRepo(teamRepo *fakeTeamRepo) *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{nextID: 1, enrollments: make(map[int]*models.Enrollment), teamRepo: teamRepo}
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.enrollments {
		if existing.TournamentID == enrollment.TournamentID && existing.TeamID == enrollment.TeamID {
			return repositories.ErrEnrollmentConflict
		}
	}
	enrollment.ID = r.nextID
	enrollment.EnrolledAt = time.Now()
	r.nextID++
	clone := *enrollment
	r.enrollments[enrollment.ID] = &clone
	return nil
}

func (r *fakeEnrollmentRepo) GetByID(_ context.Context, id int) (*models.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	enrollment, ok := r.enrollments[id]
	if !ok {
		return nil, repositories.ErrEnrollmentNotFound
	}
	clone := *enrollment
	return &clone, nil
}

func (r *fakeEnrollmentRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*models.Enrollment
	for _, enrollment := range r.enrollments {
		if enrollment.TournamentID == tournamentID {
			clone := *enrollment
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeEnrollmentRepo) ListTeamsByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	enrollments, err := r.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	var teams []*models.Team
	for _, enrollment := range enrollments {
		team, err := r.teamRepo.GetByID(ctx, enrollment.TeamID)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func (r *fakeEnrollmentRepo) MarkPaid(_ context.Context, id int, amount float64, paidAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	enrollment, ok := r.enrollments[id]
	if !ok {
		return repositories.ErrEnrollmentNotFound
	}
	enrollment.PaymentStatus = models.EnrollmentPaymentPaid
	enrollment.Amount = &amount
	enrollment.PaidAt = &paidAt
	return nil
}

type fakeMatchRepo struct {
	mu      sync.RWMutex
	nextID  int
	matches map[int]*models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{nextID: 1, matches: make(map[int]*models.Match)}
}

func (r *fakeMatchRepo) Create(_ context.Context, match *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	match.ID = r.nextID
	r.nextID++
	clone := *match
	r.matches[match.ID] = &clone
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	clone := *match
	return &clone, nil
}

func (r *fakeMatchRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id int, status models.MatchStatus, finishedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.Status = status
	match.FinishedAt = finishedAt
	return nil
}

func (r *fakeMatchRepo) AddGoals(_ context.Context, _ repositories.SQLExecutor, id int, home bool, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	if home {
		match.HomeGoals += delta
	} else {
		match.AwayGoals += delta
	}
	return nil
}

func (r *fakeMatchRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*models.Match
	for _, match := range r.matches {
		if match.TournamentID == tournamentID {
			clone := *match
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeMatchRepo) ListByReferee(_ context.Context, refereeID int, pending bool) ([]*models.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*models.Match
	for _, match := range r.matches {
		if match.RefereeID == nil || *match.RefereeID != refereeID {
			continue
		}
		if pending && match.Status == models.MatchStatusFinished {
			continue
		}
		clone := *match
		result = append(result, &clone)
	}
	return result, nil
}

func (r *fakeMatchRepo) ListByTeamIDs(_ context.Context, teamIDs []int) ([]*models.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make(map[int]bool, len(teamIDs))
	for _, id := range teamIDs {
		ids[id] = true
	}
	var result []*models.Match
	for _, match := range r.matches {
		if ids[match.HomeTeamID] || ids[match.AwayTeamID] {
			clone := *match
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeMatchRepo) ListFinishedByTournamentAndTeam(_ context.Context, tournamentID, teamID int) ([]*models.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*models.Match
	for _, match := range r.matches {
		if match.TournamentID == tournamentID && match.Status == models.MatchStatusFinished &&
			(match.HomeTeamID == teamID || match.AwayTeamID == teamID) {
			clone := *match
			result = append(result, &clone)
		}
	}
	return result, nil
}

type fakeEventRepo struct {
	mu        sync.RWMutex
	nextID    int
	events    map[int]*models.MatchEvent
	matchRepo *fakeMatchRepo
}

func newFakeEventRepo(matchRepo *fakeMatchRepo) *fakeEventRepo {
	return &fakeEventRepo{nextID: 1, events: make(map[int]*models.MatchEvent), matchRepo: matchRepo}
}

func (r *fakeEventRepo) Create(_ context.Context, _ repositories.SQLExecutor, event *models.MatchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = r.nextID
	event.RecordedAt = time.Now()
	r.nextID++
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int) (*models.MatchEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	event, ok := r.events[id]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	clone := *event
	return &clone, nil
}

func (r *fakeEventRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return repositories.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) ListByMatch(_ context.Context, matchID int) ([]*models.MatchEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*models.MatchEvent
	for _, event := range r.events {
		if event.MatchID == matchID {
			clone := *event
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeEventRepo) CountYellowCards(ctx context.Context, _ repositories.SQLExecutor, playerID, tournamentID int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, event := range r.events {
		if event.Kind != models.EventYellowCard || event.PlayerID != playerID {
			continue
		}
		match, err := r.matchRepo.GetByID(ctx, nil, event.MatchID)
		if err != nil {
			return 0, err
		}
		if match.TournamentID == tournamentID {
			count++
		}
	}
	return count, nil
}

func (r *fakeEventRepo) CountByKindAndReferee(ctx context.Context, kind models.EventKind, refereeID int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, event := range r.events {
		if event.Kind != kind {
			continue
		}
		match, err := r.matchRepo.GetByID(ctx, nil, event.MatchID)
		if err != nil {
			return 0, err
		}
		if match.RefereeID != nil && *match.RefereeID == refereeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeEventRepo) ListScorersByTournament(ctx context.Context, tournamentID int) ([]repositories.ScorerRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	goals := make(map[int]int)
	for _, event := range r.events {
		if event.Kind != models.EventGoal {
			continue
		}
		match, err := r.matchRepo.GetByID(ctx, nil, event.MatchID)
		if err != nil {
			return nil, err
		}
		if match.TournamentID == tournamentID {
			goals[event.PlayerID]++
		}
	}
	var rows []repositories.ScorerRow
	for playerID, count := range goals {
		rows = append(rows, repositories.ScorerRow{PlayerID: playerID, Goals: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Goals != rows[j].Goals {
			return rows[i].Goals > rows[j].Goals
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
	return rows, nil
}

type fakeSanctionRepo struct {
	mu        sync.RWMutex
	nextID    int
	sanctions map[int]*models.Sanction
}

func newFakeSanctionRepo() *fakeSanctionRepo {
	return &fakeSanctionRepo{nextID: 1, sanctions: make(map[int]*models.Sanction)}
}

func (r *fakeSanctionRepo) Create(_ context.Context, _ repositories.SQLExecutor, sanction *models.Sanction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sanction.ID = r.nextID
	r.nextID++
	clone := *sanction
	r.sanctions[sanction.ID] = &clone
	return nil
}

func (r *fakeSanctionRepo) GetByID(_ context.Context, id int) (*models.Sanction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sanction, ok := r.sanctions[id]
	if !ok {
		return nil, repositories.ErrSanctionNotFound
	}
	clone := *sanction
	return &clone, nil
}

func (r *fakeSanctionRepo) Deactivate(_ context.Context, _ repositories.SQLExecutor, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sanction, ok := r.sanctions[id]
	if !ok {
		return repositories.ErrSanctionNotFound
	}
	sanction.Active = false
	now := time.Now()
	sanction.EndDate = &now
	return nil
}

func (r *fakeSanctionRepo) ListActiveByPlayer(_ context.Context, playerID int) ([]*models.Sanction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*models.Sanction
	for _, sanction := range r.sanctions {
		if sanction.PlayerID == playerID && sanction.Active {
			clone := *sanction
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeSanctionRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.Sanction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*models.Sanction
	for _, sanction := range r.sanctions {
		if sanction.TournamentID == tournamentID {
			clone := *sanction
			result = append(result, &clone)
		}
	}
	return result, nil
}

type fakeNotificationRepo struct {
	mu            sync.RWMutex
	nextID        int
	notifications map[int]*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1, notifications: make(map[int]*models.Notification)}
}

func (r *fakeNotificationRepo) Create(_ context.Context, _ repositories.SQLExecutor, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification.ID = r.nextID
	notification.CreatedAt = time.Now()
	r.nextID++
	clone := *notification
	r.notifications[notification.ID] = &clone
	return nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id int) (*models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	notification, ok := r.notifications[id]
	if !ok {
		return nil, repositories.ErrNotificationNotFound
	}
	clone := *notification
	return &clone, nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID int) ([]*models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*models.Notification
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			clone := *notification
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification, ok := r.notifications[id]
	if !ok {
		return repositories.ErrNotificationNotFound
	}
	notification.Read = true
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			notification.Read = true
		}
	}
	return nil
}

type fakeIncidentRepo struct {
	mu        sync.RWMutex
	nextID    int
	incidents map[int]*models.MatchIncident
}

func newFakeIncidentRepo() *fakeIncidentRepo {
	return &fakeIncidentRepo{nextID: 1, incidents: make(map[int]*models.MatchIncident)}
}

func (r *fakeIncidentRepo) Create(_ context.Context, incident *models.MatchIncident) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	incident.ID = r.nextID
	incident.ReportedAt = time.Now()
	r.nextID++
	clone := *incident
	r.incidents[incident.ID] = &clone
	return nil
}

func (r *fakeIncidentRepo) ListByMatch(_ context.Context, matchID int) ([]*models.MatchIncident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*models.MatchIncident
	for _, incident := range r.incidents {
		if incident.MatchID == matchID {
			clone := *incident
			result = append(result, &clone)
		}
	}
	return result, nil
}
