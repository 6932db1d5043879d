// Package backendtest provides an in-memory stand-in for the remote court API,
// served over httptest, for exercising the web tier end to end.
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
)

// Court is stored the way the remote API stores it: list columns are JSON text.
type Court struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	Price           int    `json:"price"`
	MaxPlayers      int    `json:"maxPlayers"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	ImgURLs         string `json:"imgurls"`
	CurrentBookings string `json:"currentbookings"`
}

type Booking struct {
	ID            int    `json:"id"`
	TransactionID string `json:"transactionid"`
	UserID        string `json:"userid"`
	CourtID       string `json:"courtid"`
	CourtName     string `json:"court"`
	Date          string `json:"date"`
	MaxPlayers    int    `json:"maxplayers"`
	TotalAmount   int    `json:"totalamount"`
	Status        string `json:"status"`
}

type User struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Number   string `json:"number"`
	Password string `json:"-"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Server is a fake remote API. State is only reachable through its methods.
type Server struct {
	*httptest.Server

	mu              sync.Mutex
	courts          map[string]*Court
	bookings        []*Booking
	users           []*User
	nextID          int
	calls           map[string]int
	failures        map[string]int
	dropResponse    map[string]bool
	lastBody        map[string]json.RawMessage
	idempotencyKeys []string
}

// New starts a fake API. Call Close when done.
func New() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		courts:       make(map[string]*Court),
		nextID:       1,
		calls:        make(map[string]int),
		failures:     make(map[string]int),
		dropResponse: make(map[string]bool),
		lastBody:     make(map[string]json.RawMessage),
	}
	r := gin.New()
	r.Use(s.track)

	courts := r.Group("/api/courts")
	courts.GET("/getAllCourts", s.getAllCourts)
	courts.POST("/getCourtById", s.getCourtByID)
	courts.POST("/addCourt", s.addCourt)
	courts.PUT("/updateCourt/:id", s.updateCourt)
	courts.DELETE("/deleteCourt/:id", s.deleteCourt)

	bookings := r.Group("/api/bookings")
	bookings.POST("/bookingCourt", s.bookCourt)
	bookings.POST("/confirmPayment", s.confirmPayment)
	bookings.POST("/cancelBooking", s.cancelBooking)
	bookings.POST("/getBookingsByUserId", s.getBookingsByUserID)
	bookings.GET("/getAllBookings", s.getAllBookings)

	users := r.Group("/api/users")
	users.POST("/login", s.login)
	users.POST("/register", s.register)
	users.GET("/getAllUsers", s.getAllUsers)

	s.Server = httptest.NewServer(r)
	return s
}

// track counts calls, records bodies and applies injected failures.
func (s *Server) track(c *gin.Context) {
	path := c.Request.URL.Path
	var body json.RawMessage
	if c.Request.Body != nil {
		_ = json.NewDecoder(c.Request.Body).Decode(&body)
	}
	c.Set("body", body)

	s.mu.Lock()
	s.calls[path]++
	s.lastBody[path] = body
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		s.idempotencyKeys = append(s.idempotencyKeys, key)
	}
	status, fail := s.failures[path]
	if fail {
		delete(s.failures, path)
	}
	s.mu.Unlock()

	if fail {
		c.AbortWithStatusJSON(status, gin.H{"message": "injected failure"})
		return
	}
	c.Next()
}

func bind(c *gin.Context, out interface{}) bool {
	raw, _ := c.Get("body")
	body, _ := raw.(json.RawMessage)
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing body"})
		return false
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return false
	}
	return true
}

// FailNext makes the next call to path answer with status.
func (s *Server) FailNext(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = status
}

// LoseNextResponse makes the next call to path take effect but answer 504, as if
// the response was lost on the way back.
func (s *Server) LoseNextResponse(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropResponse[path] = true
}

// Calls returns how many times path was hit.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// LastBody returns the last JSON body received on path.
func (s *Server) LastBody(path string) json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBody[path]
}

// IdempotencyKeys returns every Idempotency-Key header seen, in order.
func (s *Server) IdempotencyKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.idempotencyKeys...)
}

// AddCourt seeds a court and returns its id.
func (s *Server) AddCourt(name, courtType string, price, maxPlayers int, images ...string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	imgs, _ := json.Marshal(images)
	id := s.nextID
	s.nextID++
	s.courts[strconv.Itoa(id)] = &Court{
		ID:              id,
		Name:            name,
		Type:            courtType,
		Price:           price,
		MaxPlayers:      maxPlayers,
		Location:        "Auckland",
		Description:     name + " description",
		ImgURLs:         string(imgs),
		CurrentBookings: "[]",
	}
	return strconv.Itoa(id)
}

// AddUser seeds an account and returns its id.
func (s *Server) AddUser(name, email, password string, admin bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("u%d", s.nextID)
	s.nextID++
	s.users = append(s.users, &User{ID: id, Name: name, Email: email, Password: password, IsAdmin: admin})
	return id
}

// AddBooking seeds a booking and returns its id.
func (s *Server) AddBooking(userID, courtID, courtName, date string, amount int, status string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.newBooking(userID, courtID, courtName, date, 4, amount, status)
	return strconv.Itoa(b.ID)
}

// SetBookingStatus overrides a booking status.
func (s *Server) SetBookingStatus(bookingID, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b := s.findBooking(bookingID); b != nil {
		b.Status = status
	}
}

// BookingStatus returns the stored status of a booking, or "".
func (s *Server) BookingStatus(bookingID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b := s.findBooking(bookingID); b != nil {
		return b.Status
	}
	return ""
}

// HasCourt reports whether a court with id exists.
func (s *Server) HasCourt(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.courts[id]
	return ok
}

func (s *Server) newBooking(userID, courtID, courtName, date string, maxPlayers, amount int, status string) *Booking {
	id := s.nextID
	s.nextID++
	b := &Booking{
		ID:            id,
		TransactionID: fmt.Sprintf("txn-%d", id),
		UserID:        userID,
		CourtID:       courtID,
		CourtName:     courtName,
		Date:          date,
		MaxPlayers:    maxPlayers,
		TotalAmount:   amount,
		Status:        status,
	}
	s.bookings = append(s.bookings, b)
	return b
}

func (s *Server) findBooking(id string) *Booking {
	for _, b := range s.bookings {
		if strconv.Itoa(b.ID) == id {
			return b
		}
	}
	return nil
}
