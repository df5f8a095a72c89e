// Package mocktools provides deterministic simulators for the support tools.
// Outputs are derived from an md5 hash of the inputs so the same call always
// produces the same result, which keeps rollout environments reproducible.
package mocktools

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/pkg/errors"
)

var storeNames = []string{
	"Tạp Hóa Bảo Trân", "Shop Chị Điệp", "Cửa Hàng Thanh Vinh",
	"TH Cô Hương", "Quán Hiếu Cáo", "Tạp Hóa Thượng Hải",
	"Cửa Hàng Nhã Vy", "Shop Tri Kỷ Quán", "Tạp Hóa Minh Khai",
	"CH Bình An", "Quán Phương Nam", "TH Hòa Bình",
}

type distributor struct {
	Code string
	Name string
}

var distributors = []distributor{
	{"10375694", "NPP QNI29"}, {"10260229", "MH Phú Cường"},
	{"63401890", "SubD Cát Tiên"}, {"10399522", "NPP CP8"},
	{"Đoàn Hằng", "SubD Đoàn Hằng"}, {"Hiền Đô", "Supplier Hiền Đô"},
	{"Cường Hải", "Sub Cường Hải"}, {"Cô Là", "Sub Cô Là"},
}

var orderStatuses = []string{"Đã nhận", "Đang xử lý", "Chưa về NPP", "Đã duyệt", "Chờ duyệt"}

// hashInput maps a seed string to a non-negative big integer via md5, so
// selections stay stable across processes and platforms.
func hashInput(seed string) *big.Int {
	sum := md5.Sum([]byte(seed))
	return new(big.Int).SetBytes(sum[:])
}

func hashMod(seed string, mod int64) int64 {
	return new(big.Int).Mod(hashInput(seed), big.NewInt(mod)).Int64()
}

func selectString(seed string, items []string) string {
	return items[hashMod(seed, int64(len(items)))]
}

func selectDistributor(seed string) distributor {
	return distributors[hashMod(seed, int64(len(distributors)))]
}

// generatePhone derives a stable 10-digit phone number starting with 0.
func generatePhone(seed string) string {
	n := hashMod(seed, 900000000) + 100000000
	return fmt.Sprintf("0%09d", n)[:10]
}

func storeStatus(storeCode string) string {
	prob := hashMod(storeCode, 100)
	switch {
	case prob < 80:
		return "active"
	case prob < 95:
		return "đóng"
	default:
		return "inactive"
	}
}

// Simulator evaluates tool calls against hash-derived fixtures. The clock is
// injectable so time-bearing fields can be pinned in tests.
type Simulator struct {
	now func() time.Time
}

type SimulatorOption func(*Simulator)

func WithClock(now func() time.Time) SimulatorOption {
	return func(s *Simulator) {
		s.now = now
	}
}

func NewSimulator(options ...SimulatorOption) *Simulator {
	ret := &Simulator{
		now: time.Now,
	}
	for _, o := range options {
		o(ret)
	}
	return ret
}

// StoreInfo is the lookup_store_info result. RegisteredPhone is the phone on
// file, which only differs from a caller-supplied phone when the customer
// changed numbers without updating the system.
type StoreInfo struct {
	StoreCode       string `json:"store_code"`
	StoreName       string `json:"store_name"`
	RegisteredPhone string `json:"registered_phone"`
	Status          string `json:"status"`
	AppRegistered   bool   `json:"app_registered"`
}

func (s *Simulator) LookupStoreInfo(storeCode, phone, distributorCode string) StoreInfo {
	seed := storeCode
	if seed == "" {
		seed = phone
	}
	if seed == "" {
		seed = distributorCode
	}
	if seed == "" {
		seed = "default"
	}

	if storeCode == "" {
		storeCode = fmt.Sprintf("%d", 60000000+hashMod(seed, 10000000))
	}

	return StoreInfo{
		StoreCode:       storeCode,
		StoreName:       selectString(storeCode, storeNames),
		RegisteredPhone: generatePhone(storeCode),
		Status:          storeStatus(storeCode),
		AppRegistered:   hashMod(storeCode+"app", 100) < 90,
	}
}

// Relationship is the check_relationship result. When HasRelationship is
// false every other field is zero.
type Relationship struct {
	HasRelationship    bool   `json:"has_relationship"`
	CurrentDistributor string `json:"current_distributor,omitempty"`
	DistributorName    string `json:"distributor_name,omitempty"`
	Status             string `json:"status,omitempty"`
	LastModified       string `json:"last_modified,omitempty"`
	ModifiedBy         string `json:"modified_by,omitempty"`
	SelfCreated        bool   `json:"self_created"`
}

func (s *Simulator) CheckRelationship(outletID, distributorID string) Relationship {
	seed := outletID + distributorID
	prob := hashMod(seed, 100)

	if prob >= 70 {
		return Relationship{}
	}

	d := selectDistributor(seed)

	status := "Active"
	if prob >= 85 {
		status = "Inactive"
	}

	selfCreated := prob < 10
	modifiedBy := "SA"
	if selfCreated {
		modifiedBy = "user"
	} else if hashMod(seed, 2) == 1 {
		modifiedBy = "system"
	}

	hoursAgo := hashMod(seed, 48)
	lastModified := s.now().Add(-time.Duration(hoursAgo) * time.Hour)

	return Relationship{
		HasRelationship:    true,
		CurrentDistributor: d.Code,
		DistributorName:    d.Name,
		Status:             status,
		LastModified:       lastModified.Format("2006-01-02 15:04:05"),
		ModifiedBy:         modifiedBy,
		SelfCreated:        selfCreated,
	}
}

// OrderStatus is the check_order_status result. Approved carries a value only
// for Gratis orders.
type OrderStatus struct {
	Status      string `json:"status"`
	OutletID    string `json:"outlet_id"`
	Distributor string `json:"distributor"`
	OrderDate   string `json:"order_date"`
	OrderType   string `json:"order_type"`
	Approved    *bool  `json:"approved"`
}

func (s *Simulator) CheckOrderStatus(orderCode, channel string) OrderStatus {
	seed := orderCode + channel
	prob := hashMod(seed, 100)

	orderType := "Thường"
	var approved *bool
	if prob < 20 {
		orderType = "Gratis"
		v := prob < 70
		approved = &v
	}

	daysAgo := hashMod(seed, 7)
	orderDate := s.now().AddDate(0, 0, -int(daysAgo))

	return OrderStatus{
		Status:      selectString(seed+"status", orderStatuses),
		OutletID:    fmt.Sprintf("%d", 60000000+hashMod(seed, 10000000)),
		Distributor: selectDistributor(seed).Code,
		OrderDate:   orderDate.Format("2006-01-02"),
		OrderType:   orderType,
		Approved:    approved,
	}
}

// Ticket is the create_ticket result.
type Ticket struct {
	TicketID string `json:"ticket_id"`
	Status   string `json:"status"`
}

func (s *Simulator) CreateTicket(team, description, payload string) Ticket {
	seed := team + description + payload
	return Ticket{
		TicketID: fmt.Sprintf("TKT%06d", hashMod(seed, 1000000)),
		Status:   "Đã tạo thành công",
	}
}

// SyncResult is the force_sync result.
type SyncResult struct {
	Success bool `json:"success"`
}

func (s *Simulator) ForceSync(outletID, distributorID string) SyncResult {
	return SyncResult{
		Success: hashMod(outletID+distributorID, 100) < 95,
	}
}

// GuideResult is the send_guide result. Guides always go through.
type GuideResult struct {
	Sent bool `json:"sent"`
}

func (s *Simulator) SendGuide(guideType string) GuideResult {
	_ = guideType
	return GuideResult{Sent: true}
}

// Call dispatches a tool by name on loosely typed arguments, as parsed from a
// completion. Non-string argument values are rendered through their JSON form
// so hash seeds stay stable.
func (s *Simulator) Call(name string, arguments map[string]interface{}) (interface{}, error) {
	arg := func(key string) string {
		v, ok := arguments[key]
		if !ok || v == nil {
			return ""
		}
		if str, ok := v.(string); ok {
			return str
		}
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(payload)
	}

	switch name {
	case "lookup_store_info":
		return s.LookupStoreInfo(arg("store_code"), arg("phone"), arg("distributor_code")), nil
	case "check_relationship":
		return s.CheckRelationship(arg("outlet_id"), arg("distributor_id")), nil
	case "check_order_status":
		return s.CheckOrderStatus(arg("order_code"), arg("channel")), nil
	case "create_ticket":
		return s.CreateTicket(arg("team"), arg("description"), canonicalPayload(arguments["payload"])), nil
	case "force_sync":
		return s.ForceSync(arg("outlet_id"), arg("distributor_id")), nil
	case "send_guide":
		return s.SendGuide(arg("guide_type")), nil
	default:
		return nil, errors.Errorf("unknown tool %q, available tools: %v", name, Names())
	}
}

// Names returns the simulated tool names, sorted.
func Names() []string {
	ret := []string{
		"lookup_store_info",
		"check_relationship",
		"check_order_status",
		"create_ticket",
		"force_sync",
		"send_guide",
	}
	sort.Strings(ret)
	return ret
}

// canonicalPayload renders the ticket payload with sorted keys so equivalent
// payloads hash to the same ticket ID.
func canonicalPayload(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(payload)
}
