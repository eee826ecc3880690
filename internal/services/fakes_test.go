package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// clock hands out strictly increasing timestamps so ordering by creation is deterministic.
type clock struct{ n int }

func (c *clock) tick() time.Time {
	c.n++
	return epoch.Add(time.Duration(c.n) * time.Second)
}

func window[T any](rows []T, offset, limit int) []T {
	if limit < 1 {
		return rows
	}
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func sortIDs(ids []uint) []uint {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type fakeUsers struct {
	rows map[uint]*models.User
	next uint
}

func newFakeUsers() *fakeUsers { return &fakeUsers{rows: map[uint]*models.User{}} }

// add stores a user named first with a derived email.
func (f *fakeUsers) add(first string) *models.User {
	f.next++
	u := &models.User{ID: f.next, FirstName: first, LastName: "Doe", Email: strings.ToLower(first) + "@example.com", Role: models.RoleUser}
	f.rows[u.ID] = u
	return u
}

func (f *fakeUsers) sorted(keep func(*models.User) bool) []models.User {
	var out []models.User
	for _, u := range f.rows {
		if keep(u) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeUsers) CreateUser(_ context.Context, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	for _, u := range f.rows {
		if user.Email != "" && u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	f.next++
	user.ID = f.next
	cp := *user
	f.rows[user.ID] = &cp
	return nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.rows {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUsers) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	for _, u := range f.rows {
		if u.FirebaseUID != nil && *u.FirebaseUID == uid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUsers) GetUsersByIDs(_ context.Context, ids []uint) ([]models.User, error) {
	want := make(map[uint]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return f.sorted(func(u *models.User) bool { return want[u.ID] }), nil
}

func (f *fakeUsers) GetUsers(_ context.Context, offset, limit int) ([]models.User, int64, error) {
	all := f.sorted(func(*models.User) bool { return true })
	return window(all, offset, limit), int64(len(all)), nil
}

func (f *fakeUsers) GetUsersExcept(_ context.Context, excluded []uint) ([]models.User, error) {
	skip := make(map[uint]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}
	return f.sorted(func(u *models.User) bool { return !skip[u.ID] }), nil
}

func (f *fakeUsers) EmailOrPhoneTaken(_ context.Context, email, phone string) (bool, error) {
	for _, u := range f.rows {
		if strings.EqualFold(u.Email, email) || (phone != "" && u.PhoneNumber == phone) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) UpdateUser(_ context.Context, user *models.User) error {
	if _, ok := f.rows[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *user
	f.rows[user.ID] = &cp
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id uint, hash string) error {
	u, ok := f.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (f *fakeUsers) DeleteUser(_ context.Context, id uint) error {
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeUsers) SearchUsers(_ context.Context, query string, offset, limit int) ([]models.User, int64, error) {
	q := strings.ToLower(query)
	all := f.sorted(func(u *models.User) bool {
		return strings.Contains(strings.ToLower(u.FullName()+" "+u.Email), q)
	})
	return window(all, offset, limit), int64(len(all)), nil
}

type fakeFriendships struct {
	users *fakeUsers
	rows  map[uint]*models.Friendship
	next  uint
}

func newFakeFriendships(users *fakeUsers) *fakeFriendships {
	return &fakeFriendships{users: users, rows: map[uint]*models.Friendship{}}
}

// befriend stores an accepted row directly.
func (f *fakeFriendships) befriend(a, b uint) {
	f.next++
	row := &models.Friendship{ID: f.next, RequesterID: a, AccepterID: b, Status: models.FriendshipAccepted, IsFriend: true}
	_ = row.BeforeSave(nil)
	f.rows[row.ID] = row
}

func (f *fakeFriendships) byPair(a, b uint) *models.Friendship {
	low, high := models.NormalizePair(a, b)
	for _, row := range f.rows {
		if row.PairLow == low && row.PairHigh == high {
			return row
		}
	}
	return nil
}

func (f *fakeFriendships) RequestPair(_ context.Context, requesterID, accepterID uint, guard repositories.RequestGuard) (*models.Friendship, error) {
	existing := f.byPair(requesterID, accepterID)
	var snapshot *models.Friendship
	if existing != nil {
		cp := *existing
		snapshot = &cp
	}
	if err := guard(snapshot); err != nil {
		return nil, err
	}
	if existing == nil {
		f.next++
		existing = &models.Friendship{ID: f.next}
		f.rows[existing.ID] = existing
	}
	existing.RequesterID = requesterID
	existing.AccepterID = accepterID
	existing.Status = models.FriendshipPending
	existing.IsFriend = false
	_ = existing.BeforeSave(nil)
	cp := *existing
	return &cp, nil
}

func (f *fakeFriendships) GetFriendshipByID(_ context.Context, id uint) (*models.Friendship, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeFriendships) GetFriendshipWithUsers(ctx context.Context, id uint) (*models.Friendship, error) {
	row, err := f.GetFriendshipByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u, ok := f.users.rows[row.RequesterID]; ok {
		row.Requester = *u
	}
	if u, ok := f.users.rows[row.AccepterID]; ok {
		row.Accepter = *u
	}
	return row, nil
}

func (f *fakeFriendships) GetFriendshipByPair(_ context.Context, a, b uint) (*models.Friendship, error) {
	row := f.byPair(a, b)
	if row == nil {
		return nil, repositories.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeFriendships) UpdateFriendship(_ context.Context, row *models.Friendship) error {
	if _, ok := f.rows[row.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *row
	_ = cp.BeforeSave(nil)
	f.rows[row.ID] = &cp
	return nil
}

func (f *fakeFriendships) DeleteFriendship(_ context.Context, id uint) error {
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeFriendships) ListRequests(_ context.Context, userID uint, filter repositories.RequestFilter, offset, limit int) ([]models.Friendship, int64, error) {
	var out []models.Friendship
	for _, row := range f.rows {
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		sent, received := row.RequesterID == userID, row.AccepterID == userID
		switch filter.Direction {
		case models.DirectionSent:
			if !sent {
				continue
			}
		case models.DirectionReceived:
			if !received {
				continue
			}
		default:
			if !sent && !received {
				continue
			}
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, offset, limit), int64(len(out)), nil
}

func (f *fakeFriendships) GetFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	sets, err := f.GetFriendIDsOf(ctx, []uint{userID})
	return sets[userID], err
}

func (f *fakeFriendships) GetFriendIDsOf(_ context.Context, userIDs []uint) (map[uint][]uint, error) {
	out := make(map[uint][]uint, len(userIDs))
	for _, id := range userIDs {
		for _, row := range f.rows {
			if row.Status != models.FriendshipAccepted || (row.RequesterID != id && row.AccepterID != id) {
				continue
			}
			if _, live := f.users.rows[row.Other(id)]; live {
				out[id] = append(out[id], row.Other(id))
			}
		}
		sortIDs(out[id])
	}
	return out, nil
}

type fakePosts struct {
	clock *clock
	rows  map[uint]*models.Post
	next  uint
	media uint
}

func newFakePosts(c *clock) *fakePosts { return &fakePosts{clock: c, rows: map[uint]*models.Post{}} }

func (f *fakePosts) CreatePost(_ context.Context, post *models.Post) error {
	f.next++
	post.ID = f.next
	post.CreatedAt = f.clock.tick()
	for i := range post.Media {
		f.media++
		post.Media[i].ID = f.media
		post.Media[i].PostID = post.ID
	}
	cp := *post
	f.rows[post.ID] = &cp
	return nil
}

func (f *fakePosts) GetPostByID(_ context.Context, id uint) (*models.Post, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePosts) GetPostsByUserIDs(_ context.Context, userIDs []uint, offset, limit int) ([]models.Post, int64, error) {
	want := make(map[uint]bool, len(userIDs))
	for _, id := range userIDs {
		want[id] = true
	}
	var out []models.Post
	for _, p := range f.rows {
		if want[p.UserID] {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return window(out, offset, limit), int64(len(out)), nil
}

func (f *fakePosts) DeletePost(_ context.Context, id uint) error {
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeStories struct {
	rows map[string]*models.Story
}

func newFakeStories() *fakeStories { return &fakeStories{rows: map[string]*models.Story{}} }

// put stores a story created at the given instant.
func (f *fakeStories) put(userID uint, at time.Time) *models.Story {
	st := &models.Story{ID: primitive.NewObjectID(), UserID: userID, MediaPath: "stories/x.jpg", MediaType: "image", CreatedAt: at}
	f.rows[st.ID.Hex()] = st
	return st
}

func (f *fakeStories) CreateStory(_ context.Context, story *models.Story) error {
	story.ID = primitive.NewObjectID()
	story.CreatedAt = epoch
	cp := *story
	f.rows[story.ID.Hex()] = &cp
	return nil
}

func (f *fakeStories) GetStoryByID(_ context.Context, id string) (*models.Story, error) {
	st, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (f *fakeStories) GetStoriesByUserIDs(_ context.Context, userIDs []uint, since time.Time) ([]models.Story, error) {
	want := make(map[uint]bool, len(userIDs))
	for _, id := range userIDs {
		want[id] = true
	}
	var out []models.Story
	for _, st := range f.rows {
		if want[st.UserID] && st.CreatedAt.After(since) {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (f *fakeStories) DeleteStory(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeComments struct {
	clock *clock
	rows  map[uint]*models.Comment
	next  uint
}

func newFakeComments(c *clock) *fakeComments { return &fakeComments{clock: c, rows: map[uint]*models.Comment{}} }

func (f *fakeComments) CreateComment(_ context.Context, c *models.Comment) error {
	f.next++
	c.ID = f.next
	c.CreatedAt = f.clock.tick()
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeComments) GetCommentByID(_ context.Context, id uint) (*models.Comment, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeComments) GetCommentsByPostID(_ context.Context, postID uint, offset, limit int) ([]models.Comment, int64, error) {
	var out []models.Comment
	for _, c := range f.rows {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, offset, limit), int64(len(out)), nil
}

func (f *fakeComments) CountByPostIDs(_ context.Context, postIDs []uint) (map[uint]int64, error) {
	out := map[uint]int64{}
	for _, id := range postIDs {
		for _, c := range f.rows {
			if c.PostID == id {
				out[id]++
			}
		}
	}
	return out, nil
}

func (f *fakeComments) UpdateComment(_ context.Context, c *models.Comment) error {
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeComments) DeleteComment(_ context.Context, id uint) error {
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeLikes struct {
	rows map[uint]*models.Like
	next uint
}

func newFakeLikes() *fakeLikes { return &fakeLikes{rows: map[uint]*models.Like{}} }

func (f *fakeLikes) GetLikeByID(_ context.Context, id uint) (*models.Like, error) {
	l, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLikes) GetLike(_ context.Context, postID, userID uint) (*models.Like, error) {
	for _, l := range f.rows {
		if l.PostID == postID && l.UserID == userID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeLikes) SaveLike(_ context.Context, like *models.Like) error {
	if like.ID == 0 {
		f.next++
		like.ID = f.next
	}
	cp := *like
	f.rows[like.ID] = &cp
	return nil
}

func (f *fakeLikes) GetLikedUserIDs(_ context.Context, postID uint) ([]uint, error) {
	var ids []uint
	for _, l := range f.rows {
		if l.PostID == postID && l.Liked {
			ids = append(ids, l.UserID)
		}
	}
	return sortIDs(ids), nil
}

func (f *fakeLikes) CountByPostIDs(_ context.Context, postIDs []uint) (map[uint]int64, error) {
	out := map[uint]int64{}
	for _, id := range postIDs {
		for _, l := range f.rows {
			if l.PostID == id && l.Liked {
				out[id]++
			}
		}
	}
	return out, nil
}

type fakeNotifications struct {
	clock *clock
	rows  map[uint]*models.Notification
	next  uint
}

func newFakeNotifications(c *clock) *fakeNotifications {
	return &fakeNotifications{clock: c, rows: map[uint]*models.Notification{}}
}

// forUser returns the user's live rows, newest first.
func (f *fakeNotifications) forUser(userID uint) []models.Notification {
	var out []models.Notification
	for _, n := range f.rows {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *fakeNotifications) CreateNotifications(_ context.Context, rows []models.Notification) error {
	for i := range rows {
		f.next++
		rows[i].ID = f.next
		rows[i].CreatedAt = f.clock.tick()
		cp := rows[i]
		f.rows[cp.ID] = &cp
	}
	return nil
}

func (f *fakeNotifications) GetByUserID(_ context.Context, userID uint, offset, limit int) ([]models.Notification, int64, error) {
	all := f.forUser(userID)
	return window(all, offset, limit), int64(len(all)), nil
}

func (f *fakeNotifications) GetGrouped(_ context.Context, userID uint) (today, yesterday, thisWeek, older []models.Notification, err error) {
	return nil, nil, nil, f.forUser(userID), nil
}

func (f *fakeNotifications) GetUnreadCount(_ context.Context, userID uint) (int64, error) {
	var n int64
	for _, row := range f.forUser(userID) {
		if !row.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeNotifications) MarkAsRead(_ context.Context, userID, id uint) error {
	n, ok := f.rows[id]
	if !ok || n.UserID != userID {
		return repositories.ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (f *fakeNotifications) MarkAllAsRead(_ context.Context, userID uint) error {
	for _, n := range f.rows {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotifications) DeleteNotification(_ context.Context, userID, id uint) error {
	n, ok := f.rows[id]
	if !ok || n.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeNotifications) DeleteAllForUser(_ context.Context, userID uint) (int64, error) {
	var n int64
	for id, row := range f.rows {
		if row.UserID == userID {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeNotifications) DeleteByActivity(_ context.Context, types []models.ActivityType, activityID string) error {
	for id, row := range f.rows {
		if row.ActivityID != activityID {
			continue
		}
		for _, t := range types {
			if row.ActivityType == t {
				delete(f.rows, id)
				break
			}
		}
	}
	return nil
}

type fakeResets struct {
	rows map[uint]*models.ForgotPassword
	next uint
	now  func() time.Time
}

func newFakeResets(now func() time.Time) *fakeResets {
	return &fakeResets{rows: map[uint]*models.ForgotPassword{}, now: now}
}

func (f *fakeResets) ReplaceToken(_ context.Context, token *models.ForgotPassword) error {
	for id, row := range f.rows {
		if row.UserID == token.UserID {
			delete(f.rows, id)
		}
	}
	f.next++
	token.ID = f.next
	token.CreatedAt = f.now()
	cp := *token
	f.rows[token.ID] = &cp
	return nil
}

func (f *fakeResets) GetLatestToken(_ context.Context, userID uint) (*models.ForgotPassword, error) {
	for _, row := range f.rows {
		if row.UserID == userID {
			cp := *row
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeResets) ConsumeToken(_ context.Context, id uint) error {
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type pushed struct {
	UserID  uint
	Event   string
	Payload any
}

type recordingSink struct {
	mu     sync.Mutex
	pushes []pushed
}

func (s *recordingSink) SendToUser(userID uint, event string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushes = append(s.pushes, pushed{UserID: userID, Event: event, Payload: payload})
}

func (s *recordingSink) SendToGroup(string, string, any) {}

func (s *recordingSink) recipients() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint, len(s.pushes))
	for i, p := range s.pushes {
		ids[i] = p.UserID
	}
	return ids
}

type fakeBlobs struct {
	saved   map[string][]byte
	deleted []string
	n       int
}

func newFakeBlobs() *fakeBlobs { return &fakeBlobs{saved: map[string][]byte{}} }

func (b *fakeBlobs) Save(_ context.Context, folder string, data []byte, name string) (string, error) {
	b.n++
	p := fmt.Sprintf("%s/%d-%s", folder, b.n, name)
	b.saved[p] = data
	return p, nil
}

func (b *fakeBlobs) Delete(_ context.Context, p string) error {
	delete(b.saved, p)
	b.deleted = append(b.deleted, p)
	return nil
}

func (b *fakeBlobs) Exists(_ context.Context, p string) (bool, error) {
	_, ok := b.saved[p]
	return ok, nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(user *models.User) (string, error) {
	return fmt.Sprintf("token-%d", user.ID), nil
}

type sentMail struct {
	To, Subject, Body string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

type fakeLocations struct {
	countries map[uint]*models.Country
	cities    map[uint]*models.City
	next      uint
}

func newFakeLocations() *fakeLocations {
	return &fakeLocations{countries: map[uint]*models.Country{}, cities: map[uint]*models.City{}}
}

func (f *fakeLocations) addCountry(name string) *models.Country {
	f.next++
	c := &models.Country{ID: f.next, CountryName: name}
	f.countries[c.ID] = c
	return c
}

func (f *fakeLocations) addCity(name string, countryID uint) *models.City {
	f.next++
	c := &models.City{ID: f.next, CityName: name, CountryID: countryID}
	f.cities[c.ID] = c
	return c
}

func (f *fakeLocations) GetCountries(_ context.Context, offset, limit int) ([]models.Country, int64, error) {
	var all []models.Country
	for _, c := range f.countries {
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CountryName < all[j].CountryName })
	return window(all, offset, limit), int64(len(all)), nil
}

func (f *fakeLocations) GetCities(_ context.Context, countryID uint, offset, limit int) ([]models.City, int64, error) {
	var all []models.City
	for _, c := range f.cities {
		if countryID == 0 || c.CountryID == countryID {
			all = append(all, *c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CityName < all[j].CityName })
	return window(all, offset, limit), int64(len(all)), nil
}

func (f *fakeLocations) GetCountryByID(_ context.Context, id uint) (*models.Country, error) {
	c, ok := f.countries[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeLocations) GetCityByID(_ context.Context, id uint) (*models.City, error) {
	c, ok := f.cities[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// world bundles every fake so service tests can share one graph.
type world struct {
	clock         *clock
	users         *fakeUsers
	friendships   *fakeFriendships
	posts         *fakePosts
	stories       *fakeStories
	comments      *fakeComments
	likes         *fakeLikes
	notifications *fakeNotifications
	blobs         *fakeBlobs
	locations     *fakeLocations
	sink          *recordingSink
	dispatcher    *NotificationService
}

func newWorld() *world {
	c := &clock{}
	users := newFakeUsers()
	w := &world{
		clock:         c,
		users:         users,
		friendships:   newFakeFriendships(users),
		posts:         newFakePosts(c),
		stories:       newFakeStories(),
		comments:      newFakeComments(c),
		likes:         newFakeLikes(),
		notifications: newFakeNotifications(c),
		blobs:         newFakeBlobs(),
		locations:     newFakeLocations(),
		sink:          &recordingSink{},
	}
	w.dispatcher = NewNotificationService(w.notifications, w.sink)
	return w
}
