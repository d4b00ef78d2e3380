package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:00", "17:30", "23:59"}
	invalid := []string{"24:00", "9:0x", "09:60", "morning", ""}
	for _, s := range valid {
		if !IsValidTimeOfDay(s) {
			t.Errorf("IsValidTimeOfDay(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidTimeOfDay(s) {
			t.Errorf("IsValidTimeOfDay(%q) = true, want false", s)
		}
	}
}

func TestIsValidLatitudeLongitude(t *testing.T) {
	if !IsValidLatitude(40.0005) || !IsValidLatitude(-90) || !IsValidLatitude(90) {
		t.Error("expected valid latitudes to pass")
	}
	if IsValidLatitude(90.1) || IsValidLatitude(-91) {
		t.Error("expected out-of-range latitudes to fail")
	}
	if !IsValidLongitude(-73.0) || !IsValidLongitude(180) || !IsValidLongitude(-180) {
		t.Error("expected valid longitudes to pass")
	}
	if IsValidLongitude(180.5) || IsValidLongitude(-181) {
		t.Error("expected out-of-range longitudes to fail")
	}
}

func TestIsValidWeekdaySet(t *testing.T) {
	valid := []string{"1,2,3,4,5", "6,7", "1", "1, 3, 5"}
	invalid := []string{"", "0,1", "1,8", "mon,tue", "1,,2", "12"}
	for _, s := range valid {
		if !IsValidWeekdaySet(s) {
			t.Errorf("IsValidWeekdaySet(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidWeekdaySet(s) {
			t.Errorf("IsValidWeekdaySet(%q) = true, want false", s)
		}
	}
}

func TestIsValidOrgCode(t *testing.T) {
	valid := []string{"HQ", "BR-001", "ENG"}
	invalid := []string{"a", "hq", "BR 001", "", "THIS-CODE-IS-FAR-TOO-LONG-TO-PASS"}
	for _, code := range valid {
		if !IsValidOrgCode(code) {
			t.Errorf("IsValidOrgCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidOrgCode(code) {
			t.Errorf("IsValidOrgCode(%q) = true, want false", code)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	valid := []string{"1234-5678", "0000-0001"}
	invalid := []string{"12345678", "1234-567", "abcd-efgh", ""}
	for _, code := range valid {
		if !IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", code)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}
