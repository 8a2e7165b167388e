package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

// Round-trip: decoding a fully-populated wire document into a model and
// encoding it again must reproduce every field exactly.
func roundTrip(t *testing.T, doc string, model any) {
	t.Helper()
	if err := json.Unmarshal([]byte(doc), model); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	encoded, err := json.Marshal(model)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var want, got map[string]any
	if err := json.Unmarshal([]byte(doc), &want); err != nil {
		t.Fatalf("unmarshal fixture as map failed: %v", err)
	}
	if err := json.Unmarshal(encoded, &got); err != nil {
		t.Fatalf("unmarshal encoded as map failed: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("round trip mismatch:\nwant %v\ngot  %v", want, got)
	}
}

func TestBreachRoundTrip(t *testing.T) {
	doc := `{
		"Name": "Adobe",
		"Title": "Adobe",
		"Domain": "adobe.com",
		"BreachDate": "2013-10-04",
		"AddedDate": "2013-12-04T00:00:00Z",
		"ModifiedDate": "2022-05-15T23:52:49Z",
		"PwnCount": 152445165,
		"Description": "In October 2013, 153 million Adobe accounts were breached.",
		"LogoPath": "https://logos.haveibeenpwned.com/Adobe.png",
		"DataClasses": ["Email addresses", "Password hints", "Passwords", "Usernames"],
		"IsVerified": true,
		"IsFabricated": true,
		"IsSensitive": true,
		"IsRetired": true,
		"IsSpamList": true,
		"IsMalware": true,
		"IsStealerLog": true,
		"IsSubscriptionFree": true,
		"Attribution": "disclosed by vendor"
	}`
	var b Breach
	roundTrip(t, doc, &b)
	if b.Name != "Adobe" {
		t.Errorf("Name = %q, want Adobe", b.Name)
	}
	if b.PwnCount != 152445165 {
		t.Errorf("PwnCount = %d, want 152445165", b.PwnCount)
	}
	if len(b.DataClasses) != 4 || b.DataClasses[0] != "Email addresses" {
		t.Errorf("DataClasses = %v", b.DataClasses)
	}
	if b.Attribution == nil || *b.Attribution != "disclosed by vendor" {
		t.Errorf("Attribution = %v", b.Attribution)
	}
}

func TestBreachOptionalFieldsAbsent(t *testing.T) {
	var b Breach
	if err := json.Unmarshal([]byte(`{"Name":"Adobe"}`), &b); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if b.Attribution != nil {
		t.Errorf("Attribution = %v, want nil", b.Attribution)
	}
	if b.DataClasses != nil {
		t.Errorf("DataClasses = %v, want nil", b.DataClasses)
	}
	if b.IsVerified {
		t.Error("IsVerified defaulted to true")
	}
}

func TestPasteRoundTrip(t *testing.T) {
	doc := `{
		"Source": "Pastebin",
		"Id": "8Q0BvKD8",
		"Title": "syslog",
		"Date": "2014-03-04T19:14:54Z",
		"EmailCount": 139
	}`
	var p Paste
	roundTrip(t, doc, &p)
	if p.Source != "Pastebin" || p.ID != "8Q0BvKD8" {
		t.Errorf("identity fields wrong: %+v", p)
	}
	if p.EmailCount == nil || *p.EmailCount != 139 {
		t.Errorf("EmailCount = %v, want 139", p.EmailCount)
	}
}

// An absent email count must stay distinguishable from zero.
func TestPasteEmailCountAbsent(t *testing.T) {
	var p Paste
	if err := json.Unmarshal([]byte(`{"Source":"Pastebin","Id":"abc"}`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if p.EmailCount != nil {
		t.Errorf("EmailCount = %v, want nil", p.EmailCount)
	}
	var q Paste
	if err := json.Unmarshal([]byte(`{"Source":"Pastebin","Id":"abc","EmailCount":0}`), &q); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if q.EmailCount == nil || *q.EmailCount != 0 {
		t.Errorf("EmailCount = %v, want explicit 0", q.EmailCount)
	}
}

func TestSubscriptionRoundTrip(t *testing.T) {
	doc := `{
		"SubscriptionName": "Pwned 1",
		"Description": "Domain search, 10 requests per minute",
		"SubscribedUntil": "2025-10-28T10:10:25Z",
		"Rpm": 10,
		"DomainSearchMaxBreachedAccounts": 25,
		"IncludesStealerLogs": true
	}`
	var s Subscription
	roundTrip(t, doc, &s)
	if s.RPM != 10 {
		t.Errorf("RPM = %d, want 10", s.RPM)
	}
	if !s.IncludesStealerLogs {
		t.Error("IncludesStealerLogs = false, want true")
	}
}

func TestSubscribedDomainRoundTrip(t *testing.T) {
	doc := `{
		"DomainName": "example.com",
		"PwnCount": 12,
		"PwnCountExcludingSpamLists": 9,
		"PwnCountExcludingSpamListsAtLastSubscriptionRenewal": 8,
		"NextSubscriptionRenewal": "2025-11-14T06:32:42Z"
	}`
	var d SubscribedDomain
	roundTrip(t, doc, &d)
	if d.DomainName != "example.com" {
		t.Errorf("DomainName = %q", d.DomainName)
	}
	if d.PwnCount == nil || *d.PwnCount != 12 {
		t.Errorf("PwnCount = %v, want 12", d.PwnCount)
	}
}

func TestSubscribedDomainCountsAbsent(t *testing.T) {
	var d SubscribedDomain
	if err := json.Unmarshal([]byte(`{"DomainName":"example.com"}`), &d); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if d.PwnCount != nil || d.NextSubscriptionRenewal != nil {
		t.Errorf("optional fields not nil: %+v", d)
	}
}
