package domain

// Breach is a single documented incident from the breach catalogue.
// Field names mirror the wire format (PascalCase JSON). Instances are
// built from a response body and never mutated afterwards.
type Breach struct {
	Name               string   `json:"Name"`
	Title              string   `json:"Title,omitempty"`
	Domain             string   `json:"Domain,omitempty"`
	BreachDate         string   `json:"BreachDate,omitempty"`
	AddedDate          string   `json:"AddedDate,omitempty"`
	ModifiedDate       string   `json:"ModifiedDate,omitempty"`
	PwnCount           int      `json:"PwnCount,omitempty"`
	Description        string   `json:"Description,omitempty"`
	LogoPath           string   `json:"LogoPath,omitempty"`
	DataClasses        []string `json:"DataClasses,omitempty"`
	IsVerified         bool     `json:"IsVerified,omitempty"`
	IsFabricated       bool     `json:"IsFabricated,omitempty"`
	IsSensitive        bool     `json:"IsSensitive,omitempty"`
	IsRetired          bool     `json:"IsRetired,omitempty"`
	IsSpamList         bool     `json:"IsSpamList,omitempty"`
	IsMalware          bool     `json:"IsMalware,omitempty"`
	IsStealerLog       bool     `json:"IsStealerLog,omitempty"`
	IsSubscriptionFree bool     `json:"IsSubscriptionFree,omitempty"`
	Attribution        *string  `json:"Attribution,omitempty"`
}

// Paste is one paste that exposed the queried account. EmailCount is a
// pointer because the API may omit it; absent is not the same as zero.
type Paste struct {
	Source     string  `json:"Source"`
	ID         string  `json:"Id"`
	Title      *string `json:"Title,omitempty"`
	Date       *string `json:"Date,omitempty"`
	EmailCount *int    `json:"EmailCount,omitempty"`
}

// Subscription describes the API key's current plan.
type Subscription struct {
	SubscriptionName                string `json:"SubscriptionName"`
	Description                     string `json:"Description,omitempty"`
	SubscribedUntil                 string `json:"SubscribedUntil,omitempty"`
	RPM                             int    `json:"Rpm,omitempty"`
	DomainSearchMaxBreachedAccounts int    `json:"DomainSearchMaxBreachedAccounts,omitempty"`
	IncludesStealerLogs             bool   `json:"IncludesStealerLogs,omitempty"`
}

// SubscribedDomain is a domain enrolled for domain search. All counts
// are optional on the wire.
type SubscribedDomain struct {
	DomainName                                          string  `json:"DomainName"`
	PwnCount                                            *int    `json:"PwnCount,omitempty"`
	PwnCountExcludingSpamLists                          *int    `json:"PwnCountExcludingSpamLists,omitempty"`
	PwnCountExcludingSpamListsAtLastSubscriptionRenewal *int    `json:"PwnCountExcludingSpamListsAtLastSubscriptionRenewal,omitempty"`
	NextSubscriptionRenewal                             *string `json:"NextSubscriptionRenewal,omitempty"`
}
