package backendtest

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Server) getAllCourts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Court, 0, len(s.courts))
	for _, court := range s.courts {
		out = append(out, *court)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) getCourtByID(c *gin.Context) {
	var in struct {
		CourtID string `json:"courtId"`
	}
	if !bind(c, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	court, ok := s.courts[in.CourtID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "court not found"})
		return
	}
	c.JSON(http.StatusOK, court)
}

type courtInput struct {
	Name        string          `json:"name"`
	Location    string          `json:"location"`
	MaxPlayers  int             `json:"maxPlayers"`
	Price       int             `json:"price"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	ImgURLs     json.RawMessage `json:"imgURLs"`
}

func (s *Server) addCourt(c *gin.Context) {
	var in courtInput
	if !bind(c, &in) {
		return
	}
	// Add takes the image list as a JSON-encoded string.
	var encoded string
	if err := json.Unmarshal(in.ImgURLs, &encoded); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "imgURLs must be a JSON string"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	court := &Court{
		ID:              id,
		Name:            in.Name,
		Type:            in.Type,
		Price:           in.Price,
		MaxPlayers:      in.MaxPlayers,
		Location:        in.Location,
		Description:     in.Description,
		ImgURLs:         encoded,
		CurrentBookings: "[]",
	}
	s.courts[strconv.Itoa(id)] = court
	c.JSON(http.StatusCreated, court)
}

func (s *Server) updateCourt(c *gin.Context) {
	var in courtInput
	if !bind(c, &in) {
		return
	}
	// Update takes the image list as a native array.
	var imgs []string
	if err := json.Unmarshal(in.ImgURLs, &imgs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "imgURLs must be an array"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	court, ok := s.courts[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "court not found"})
		return
	}
	encoded, _ := json.Marshal(imgs)
	court.Name = in.Name
	court.Location = in.Location
	court.MaxPlayers = in.MaxPlayers
	court.Price = in.Price
	court.Type = in.Type
	court.Description = in.Description
	court.ImgURLs = string(encoded)
	c.JSON(http.StatusOK, court)
}

func (s *Server) deleteCourt(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	if _, ok := s.courts[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "court not found"})
		return
	}
	delete(s.courts, id)
	c.String(http.StatusOK, "Court deleted")
}

func (s *Server) bookCourt(c *gin.Context) {
	var in struct {
		CourtName   string `json:"courtName"`
		CourtID     string `json:"courtId"`
		UserID      string `json:"userId"`
		Date        string `json:"date"`
		MaxPlayers  int    `json:"maxPlayers"`
		TotalAmount int    `json:"totalAmount"`
	}
	if !bind(c, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courts[in.CourtID]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "court not found"})
		return
	}
	b := s.newBooking(in.UserID, in.CourtID, in.CourtName, in.Date, in.MaxPlayers, in.TotalAmount, "Pending")
	c.JSON(http.StatusOK, gin.H{
		"bookingId":     b.ID,
		"transactionId": b.TransactionID,
		"dummyQR":       "data:image/png;base64,UVI=",
	})
}

func (s *Server) setStatus(c *gin.Context, status string) {
	var in struct {
		BookingID string `json:"bookingId"`
		CourtID   string `json:"courtId"`
	}
	if !bind(c, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.findBooking(in.BookingID)
	if b == nil || b.CourtID != in.CourtID {
		c.JSON(http.StatusNotFound, gin.H{"message": "booking not found"})
		return
	}
	b.Status = status
	if path := c.Request.URL.Path; s.dropResponse[path] {
		delete(s.dropResponse, path)
		c.JSON(http.StatusGatewayTimeout, gin.H{"message": "upstream timeout"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking " + status})
}

func (s *Server) confirmPayment(c *gin.Context) { s.setStatus(c, "Confirmed") }

func (s *Server) cancelBooking(c *gin.Context) { s.setStatus(c, "Cancelled") }

func (s *Server) getBookingsByUserID(c *gin.Context) {
	var in struct {
		UserID string `json:"userId"`
	}
	if !bind(c, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Booking, 0)
	for _, b := range s.bookings {
		if b.UserID == in.UserID {
			out = append(out, *b)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getAllBookings(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, *b)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !bind(c, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == in.Email && u.Password == in.Password {
			c.JSON(http.StatusOK, u)
			return
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid Credentials"})
}

func (s *Server) register(c *gin.Context) {
	var in struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Number          string `json:"number"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if !bind(c, &in) {
		return
	}
	if in.Password != in.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"message": "passwords do not match"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == in.Email {
			c.JSON(http.StatusConflict, gin.H{"message": "email already registered"})
			return
		}
	}
	id := "u" + strconv.Itoa(s.nextID)
	s.nextID++
	u := &User{ID: id, Name: in.Name, Email: in.Email, Number: in.Number, Password: in.Password}
	s.users = append(s.users, u)
	c.JSON(http.StatusCreated, u)
}

func (s *Server) getAllUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	c.JSON(http.StatusOK, out)
}
