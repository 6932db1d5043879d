package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decodeCourt(t *testing.T, payload string) Court {
	t.Helper()
	var c Court
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		t.Fatalf("decode %s: %v", payload, err)
	}
	return c
}

func TestCourtListsNormalizeRegardlessOfRepresentation(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		native  string
		want    []string
	}{
		{
			name:    "strings",
			encoded: `{"id":"1","imgurls":"[\"a.png\",\"b.png\",\"c.png\"]","currentbookings":"[\"7\",\"9\"]"}`,
			native:  `{"id":"1","imgURLs":["a.png","b.png","c.png"],"currentBookings":["7","9"]}`,
			want:    []string{"a.png", "b.png", "c.png"},
		},
		{
			name:    "empty",
			encoded: `{"id":"1","imgurls":"","currentbookings":null}`,
			native:  `{"id":"1","imgurls":[],"currentbookings":[]}`,
			want:    []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := decodeCourt(t, tt.encoded)
			b := decodeCourt(t, tt.native)
			if !reflect.DeepEqual(a, b) {
				t.Fatalf("representations differ:\n%+v\n%+v", a, b)
			}
			if !reflect.DeepEqual([]string(a.ImgURLs), tt.want) {
				t.Errorf("imgURLs: got %v, want %v", a.ImgURLs, tt.want)
			}

			// Decoding our own encoding yields the same court again.
			out, err := json.Marshal(a)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if again := decodeCourt(t, string(out)); !reflect.DeepEqual(a, again) {
				t.Errorf("re-decode differs:\n%+v\n%+v", a, again)
			}
		})
	}
}

func TestCourtDecodeIDsAndNumbers(t *testing.T) {
	c := decodeCourt(t, `{"_id":42,"name":"Court A","price":"20","maxPlayers":10.0,"type":"Indoor"}`)
	if c.ID != "42" || !c.HasID() {
		t.Errorf("id: got %q", c.ID)
	}
	if c.Price != 20 || c.MaxPlayers != 10 {
		t.Errorf("numbers: price=%d maxPlayers=%d", c.Price, c.MaxPlayers)
	}
	if c.Image(0) != "" {
		t.Errorf("expected no image, got %q", c.Image(0))
	}

	c = decodeCourt(t, `{"courtId":"c-7","name":"Court B"}`)
	if c.ID != "c-7" {
		t.Errorf("courtId fallback: got %q", c.ID)
	}
	if c = decodeCourt(t, `{"name":"nameless"}`); c.HasID() {
		t.Error("court without id must not report one")
	}
}

func TestCurrentBookingsKeepsObjects(t *testing.T) {
	c := decodeCourt(t, `{"id":"1","currentbookings":[{"bookingId": 3, "date":"2025-03-09 11:00:00"}, 4]}`)
	want := FlexList{`{"bookingId":3,"date":"2025-03-09 11:00:00"}`, "4"}
	if !reflect.DeepEqual(c.CurrentBookings, want) {
		t.Errorf("currentBookings: got %v", c.CurrentBookings)
	}
}

func TestBookingDecode(t *testing.T) {
	var b Booking
	payload := `{"bookingId":5,"transactionId":77,"userId":"u1","courtId":3,"courtName":"Court A","date":"2025-03-09 11:00:00","maxPlayers":"10","totalAmount":20,"status":"Cancelled"}`
	if err := json.Unmarshal([]byte(payload), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.ID != "5" || b.TransactionID != "77" || b.CourtID != "3" || b.MaxPlayers != 10 {
		t.Errorf("booking: got %+v", b)
	}
	if b.CourtName != "Court A" {
		t.Errorf("courtName: got %q", b.CourtName)
	}
	if b.Cancellable() {
		t.Error("cancelled booking must not be cancellable")
	}
	b.Status = BookingPending
	if !b.Cancellable() {
		t.Error("pending booking must be cancellable")
	}
}

func TestBookingDecode_CourtKey(t *testing.T) {
	var b Booking
	payload := `{"id":7,"transactionid":"txn-7","userid":"u1","courtid":3,"court":"Court A","date":"2025-03-09 11:00:00","maxplayers":10,"totalamount":20,"status":"Pending"}`
	if err := json.Unmarshal([]byte(payload), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.ID != "7" || b.CourtName != "Court A" || b.CourtID != "3" || b.MaxPlayers != 10 {
		t.Errorf("booking: got %+v", b)
	}
}

func TestUserDecode(t *testing.T) {
	var u User
	if err := json.Unmarshal([]byte(`{"_id":"u9","name":"Ana","email":"a@x","is_admin":true}`), &u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if u.ID != "u9" || !u.IsAdmin {
		t.Errorf("user: got %+v", u)
	}
}

func TestFlexIntDecode(t *testing.T) {
	cases := map[string]int{
		`12`:     12,
		`"12"`:   12,
		`12.0`:   12,
		`"12.9"`: 12,
		`null`:   0,
		`""`:     0,
	}
	for in, want := range cases {
		var got FlexInt
		if err := json.Unmarshal([]byte(in), &got); err != nil {
			t.Errorf("%s: %v", in, err)
			continue
		}
		if int(got) != want {
			t.Errorf("%s = %d, want %d", in, got, want)
		}
	}
}

func TestFlexIntRejectsNonFinite(t *testing.T) {
	for _, in := range []string{`"NaN"`, `"Inf"`, `"-Inf"`, `"+Infinity"`, `1e30`, `"-1e30"`} {
		var got FlexInt
		if err := json.Unmarshal([]byte(in), &got); err == nil {
			t.Errorf("%s decoded to %d, want error", in, got)
		}
	}
}
