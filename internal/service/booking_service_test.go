package service

import (
	"strings"
	"testing"
	"time"

	"rentaride/internal/db"
	apperrors "rentaride/internal/errors"
	"rentaride/internal/repository"
)

// memStore is an in-memory stand-in for the SQL stores. CreateBooking mirrors
// the repository's transactional semantics: an unavailable vehicle aborts the
// whole booking with no changes applied.
type memStore struct {
	vehicles     map[int]*db.Vehicle
	rentals      map[int]*db.Rental
	users        map[int]*db.User
	nextRentalID int
}

func newMemStore() *memStore {
	return &memStore{
		vehicles:     map[int]*db.Vehicle{},
		rentals:      map[int]*db.Rental{},
		users:        map[int]*db.User{},
		nextRentalID: 1,
	}
}

func (m *memStore) addVehicle(id int, name, vehicleType string, price float64, available bool) {
	m.vehicles[id] = &db.Vehicle{
		ID: id, Name: name, Model: "2023", VehicleType: vehicleType,
		Mileage: "30 MPG", PricePerDay: price, ImageURL: "http://img", IsAvailable: available,
	}
}

func (m *memStore) addUser(id int, username string, admin bool) {
	m.users[id] = &db.User{ID: id, Username: username, Email: username + "@example.com", Phone: "+100", IsAdmin: admin}
}

// VehicleStore

func (m *memStore) ListAvailable(vehicleType, search string) ([]db.Vehicle, error) {
	var out []db.Vehicle
	for _, v := range m.vehicles {
		if !v.IsAvailable {
			continue
		}
		if vehicleType != "" && v.VehicleType != vehicleType {
			continue
		}
		if search != "" {
			s := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(v.Name), s) && !strings.Contains(strings.ToLower(v.Model), s) {
				continue
			}
		}
		out = append(out, *v)
	}
	return out, nil
}

func (m *memStore) ByID(id int) (*db.Vehicle, error) {
	if v, ok := m.vehicles[id]; ok {
		c := *v
		return &c, nil
	}
	return nil, nil
}

func (m *memStore) ByIDs(ids []int) ([]db.Vehicle, error) {
	var out []db.Vehicle
	for _, id := range ids {
		if v, ok := m.vehicles[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

// RentalStore

func (m *memStore) CreateBooking(userID int, lines []repository.BookingLine) ([]int, error) {
	for _, line := range lines {
		v, ok := m.vehicles[line.VehicleID]
		if !ok || !v.IsAvailable {
			return nil, apperrors.Conflict(line.VehicleName + " is no longer available")
		}
	}
	var ids []int
	for _, line := range lines {
		m.vehicles[line.VehicleID].IsAvailable = false
		id := m.nextRentalID
		m.nextRentalID++
		m.rentals[id] = &db.Rental{
			ID: id, UserID: userID, VehicleID: line.VehicleID,
			StartDate: line.StartDate, EndDate: line.EndDate,
			TotalPrice: line.LinePrice, CreatedAt: time.Now(),
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memStore) RentalByID(id int) (*db.Rental, error) {
	if r, ok := m.rentals[id]; ok {
		c := *r
		return &c, nil
	}
	return nil, nil
}

func (m *memStore) Return(rentalID, vehicleID int) error {
	m.rentals[rentalID].IsReturned = true
	m.vehicles[vehicleID].IsAvailable = true
	return nil
}

func (m *memStore) detail(r *db.Rental) repository.RentalDetail {
	d := repository.RentalDetail{Rental: *r}
	if u, ok := m.users[r.UserID]; ok {
		d.Username = u.Username
	}
	if v, ok := m.vehicles[r.VehicleID]; ok {
		d.VehicleName = v.Name
		d.VehicleModel = v.Model
		d.VehicleImage = v.ImageURL
	}
	return d
}

func (m *memStore) ActiveForUser(userID int) ([]repository.RentalDetail, error) {
	var out []repository.RentalDetail
	for _, r := range m.rentals {
		if r.UserID == userID && !r.IsReturned {
			out = append(out, m.detail(r))
		}
	}
	return out, nil
}

func (m *memStore) ActiveAll() ([]repository.RentalDetail, error) {
	var out []repository.RentalDetail
	for _, r := range m.rentals {
		if !r.IsReturned {
			out = append(out, m.detail(r))
		}
	}
	return out, nil
}

func (m *memStore) ActiveToday(today time.Time) ([]repository.RentalDetail, error) {
	var out []repository.RentalDetail
	for _, r := range m.rentals {
		if !r.IsReturned && !r.StartDate.After(today) && !r.EndDate.Before(today) {
			out = append(out, m.detail(r))
		}
	}
	return out, nil
}

// UserStore

func (m *memStore) Create(u *db.User) error {
	u.ID = len(m.users) + 1
	u.CreatedAt = time.Now()
	m.users[u.ID] = u
	return nil
}

func (m *memStore) UserByID(id int) (*db.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, nil
}

func (m *memStore) ByUsername(username string) (*db.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memStore) ByEmail(email string) (*db.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memStore) AdminEmails() ([]string, error) {
	var out []string
	for _, u := range m.users {
		if u.IsAdmin {
			out = append(out, u.Email)
		}
	}
	return out, nil
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func newBookingFixture() (*BookingService, *memStore) {
	store := newMemStore()
	svc := NewBookingService(vehicleView{store}, rentalView{store}, userView{store}, nil)
	return svc, store
}

// The mem store shares method names across the three store interfaces, so the
// fixture exposes it through thin views.
type vehicleView struct{ *memStore }
type rentalView struct{ *memStore }
type userView struct{ *memStore }

func (v rentalView) ByID(id int) (*db.Rental, error) { return v.RentalByID(id) }
func (v userView) ByID(id int) (*db.User, error)     { return v.UserByID(id) }

func TestRentalDays(t *testing.T) {
	start := date(t, "2024-05-01")
	if days := RentalDays(start, date(t, "2024-05-02")); days != 1 {
		t.Fatalf("expected 1 day, got %d", days)
	}
	if days := RentalDays(start, date(t, "2024-05-08")); days != 7 {
		t.Fatalf("expected 7 days, got %d", days)
	}
}

func TestCreateBookingPricesExactly(t *testing.T) {
	svc, store := newBookingFixture()
	store.addUser(1, "alice", false)
	store.addVehicle(1, "Toyota Camry", db.VehicleTypeCar, 50.0, true)

	result, err := svc.CreateBooking(1, []int{1}, date(t, "2024-05-01"), date(t, "2024-05-04"))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if result.TotalPrice != 150.0 {
		t.Fatalf("expected total 150.0, got %v", result.TotalPrice)
	}
	if len(result.RentalIDs) != 1 {
		t.Fatalf("expected 1 rental, got %d", len(result.RentalIDs))
	}
	rental := store.rentals[result.RentalIDs[0]]
	if rental.TotalPrice != 150.0 {
		t.Fatalf("expected rental price 150.0, got %v", rental.TotalPrice)
	}
	if rental.IsReturned {
		t.Fatalf("new rental must not be returned")
	}
}

func TestCreateBookingEmptySelection(t *testing.T) {
	svc, _ := newBookingFixture()
	_, err := svc.CreateBooking(1, nil, date(t, "2024-05-01"), date(t, "2024-05-02"))
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateBookingBadDateRange(t *testing.T) {
	svc, store := newBookingFixture()
	store.addVehicle(1, "Toyota Camry", db.VehicleTypeCar, 50.0, true)

	_, err := svc.CreateBooking(1, []int{1}, date(t, "2024-05-04"), date(t, "2024-05-01"))
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	// Equal dates are rejected too.
	_, err = svc.CreateBooking(1, []int{1}, date(t, "2024-05-01"), date(t, "2024-05-01"))
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error for equal dates, got %v", err)
	}
	if len(store.rentals) != 0 {
		t.Fatalf("no rental may be created on validation failure")
	}
}

func TestCreateBookingUnknownVehicle(t *testing.T) {
	svc, _ := newBookingFixture()
	_, err := svc.CreateBooking(1, []int{99}, date(t, "2024-05-01"), date(t, "2024-05-02"))
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

// Booking a set that contains an unavailable vehicle is all-or-nothing: the
// conflict aborts the whole request and no vehicle is claimed.
func TestCreateBookingConflictIsAtomic(t *testing.T) {
	svc, store := newBookingFixture()
	store.addUser(1, "alice", false)
	store.addVehicle(1, "Toyota Camry", db.VehicleTypeCar, 50.0, true)
	store.addVehicle(2, "Yamaha R6", db.VehicleTypeBike, 32.0, false)

	_, err := svc.CreateBooking(1, []int{1, 2}, date(t, "2024-05-01"), date(t, "2024-05-03"))
	if !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Yamaha R6") {
		t.Fatalf("conflict should name the vehicle, got %q", err.Error())
	}
	if len(store.rentals) != 0 {
		t.Fatalf("expected no rentals after conflict, got %d", len(store.rentals))
	}
	if !store.vehicles[1].IsAvailable {
		t.Fatalf("available vehicle must not be claimed by an aborted booking")
	}
}

func TestBookedVehicleLeavesAvailabilityUntilReturn(t *testing.T) {
	svc, store := newBookingFixture()
	store.addUser(1, "alice", false)
	store.addVehicle(1, "Toyota Camry", db.VehicleTypeCar, 50.0, true)

	result, err := svc.CreateBooking(1, []int{1}, date(t, "2024-05-01"), date(t, "2024-05-03"))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	available, err := svc.ListAvailable("", "")
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	for _, v := range available {
		if v.ID == 1 {
			t.Fatalf("booked vehicle must not be listed as available")
		}
	}

	if err := svc.ReturnBooking(result.RentalIDs[0], 1); err != nil {
		t.Fatalf("ReturnBooking: %v", err)
	}
	available, _ = svc.ListAvailable("", "")
	found := false
	for _, v := range available {
		if v.ID == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("returned vehicle must be available again")
	}
}

func TestReturnBookingAuthorization(t *testing.T) {
	svc, store := newBookingFixture()
	store.addUser(1, "alice", false)
	store.addUser(2, "bob", false)
	store.addVehicle(1, "Toyota Camry", db.VehicleTypeCar, 50.0, true)

	result, err := svc.CreateBooking(1, []int{1}, date(t, "2024-05-01"), date(t, "2024-05-03"))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	err = svc.ReturnBooking(result.RentalIDs[0], 2)
	if !apperrors.IsKind(err, apperrors.KindAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
	if store.rentals[result.RentalIDs[0]].IsReturned {
		t.Fatalf("rejected return must not mutate the rental")
	}
	if store.vehicles[1].IsAvailable {
		t.Fatalf("rejected return must not free the vehicle")
	}
}

func TestReturnBookingUnknownRental(t *testing.T) {
	svc, _ := newBookingFixture()
	err := svc.ReturnBooking(42, 1)
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

// A second return of the same rental is a no-op success: the vehicle stays
// available and no error is reported.
func TestReturnBookingTwiceIsNoOp(t *testing.T) {
	svc, store := newBookingFixture()
	store.addUser(1, "alice", false)
	store.addVehicle(1, "Toyota Camry", db.VehicleTypeCar, 50.0, true)

	result, err := svc.CreateBooking(1, []int{1}, date(t, "2024-05-01"), date(t, "2024-05-03"))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	rentalID := result.RentalIDs[0]

	if err := svc.ReturnBooking(rentalID, 1); err != nil {
		t.Fatalf("first return: %v", err)
	}
	if err := svc.ReturnBooking(rentalID, 1); err != nil {
		t.Fatalf("second return must be a no-op success, got %v", err)
	}
	if !store.vehicles[1].IsAvailable {
		t.Fatalf("vehicle must stay available after double return")
	}
}

func TestListActiveForUserExcludesReturned(t *testing.T) {
	svc, store := newBookingFixture()
	store.addUser(1, "alice", false)
	store.addVehicle(1, "Toyota Camry", db.VehicleTypeCar, 50.0, true)
	store.addVehicle(2, "Honda Civic", db.VehicleTypeCar, 45.0, true)

	result, err := svc.CreateBooking(1, []int{1, 2}, date(t, "2024-05-01"), date(t, "2024-05-03"))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if err := svc.ReturnBooking(result.RentalIDs[0], 1); err != nil {
		t.Fatalf("ReturnBooking: %v", err)
	}

	active, err := svc.ListActiveForUser(1)
	if err != nil {
		t.Fatalf("ListActiveForUser: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active rental, got %d", len(active))
	}
	if active[0].ID != result.RentalIDs[1] {
		t.Fatalf("wrong rental listed as active")
	}
}

func TestListActiveTodayFiltersDateRange(t *testing.T) {
	svc, store := newBookingFixture()
	store.addUser(1, "alice", false)
	store.addVehicle(1, "Toyota Camry", db.VehicleTypeCar, 50.0, true)
	store.addVehicle(2, "Honda Civic", db.VehicleTypeCar, 45.0, true)

	if _, err := svc.CreateBooking(1, []int{1}, date(t, "2024-05-01"), date(t, "2024-05-10")); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if _, err := svc.CreateBooking(1, []int{2}, date(t, "2024-06-01"), date(t, "2024-06-05")); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	today, err := svc.ListActiveToday(date(t, "2024-05-05"))
	if err != nil {
		t.Fatalf("ListActiveToday: %v", err)
	}
	if len(today) != 1 {
		t.Fatalf("expected 1 rental running today, got %d", len(today))
	}
	if today[0].VehicleID != 1 {
		t.Fatalf("wrong rental listed for today")
	}

	all, err := svc.ListActiveAll()
	if err != nil {
		t.Fatalf("ListActiveAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 active rentals overall, got %d", len(all))
	}
}

// End-to-end scenario: two vehicles at 50.0 and 30.0 per day booked for three
// days cost 240.0 in total; returning one frees only that vehicle.
func TestBookingEndToEnd(t *testing.T) {
	svc, store := newBookingFixture()
	store.addUser(1, "alice", false)
	store.addVehicle(1, "Toyota Camry", db.VehicleTypeCar, 50.0, true)
	store.addVehicle(2, "Kawasaki Ninja 650", db.VehicleTypeBike, 30.0, true)

	result, err := svc.CreateBooking(1, []int{1, 2}, date(t, "2024-05-01"), date(t, "2024-05-04"))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if result.TotalPrice != 240.0 {
		t.Fatalf("expected total 240.0, got %v", result.TotalPrice)
	}
	if len(result.RentalIDs) != 2 {
		t.Fatalf("expected 2 rentals, got %d", len(result.RentalIDs))
	}
	if store.vehicles[1].IsAvailable || store.vehicles[2].IsAvailable {
		t.Fatalf("both vehicles must be unavailable after booking")
	}

	if err := svc.ReturnBooking(result.RentalIDs[0], 1); err != nil {
		t.Fatalf("ReturnBooking: %v", err)
	}
	if !store.vehicles[1].IsAvailable {
		t.Fatalf("returned vehicle must be available")
	}
	if store.vehicles[2].IsAvailable {
		t.Fatalf("unreturned vehicle must stay unavailable")
	}
}
