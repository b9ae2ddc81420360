package access

import (
	"jamii/internal/entities"
)

type Capability string

const (
	ReadAll      Capability = "read-all"
	ReadOwn      Capability = "read-own"
	ReadAssigned Capability = "read-assigned"
	ReadOpen     Capability = "read-open"
	WriteStatus  Capability = "write-status"
	ManageOwn    Capability = "manage-own"
	ManageAll    Capability = "manage-all"
	PlaceOrder   Capability = "place-order"
	PlaceBid     Capability = "place-bid"
)

var roleCapabilities = map[entities.Role][]Capability{
	entities.RoleAdmin:    {ReadAll, WriteStatus, ManageAll},
	entities.RoleCustomer: {ReadOwn, WriteStatus, ManageOwn, PlaceOrder},
	entities.RoleDelivery: {ReadOpen, ReadAssigned, PlaceBid},
}

func Has(identity entities.Identity, capability Capability) bool {
	for _, c := range roleCapabilities[identity.Role] {
		if c == capability {
			return true
		}
	}
	return false
}

func isOwner(identity entities.Identity, order *entities.Order) bool {
	return order.CustomerID == identity.UserID
}

func IsAssignedAgent(identity entities.Identity, order *entities.Order) bool {
	return identity.Role == entities.RoleDelivery &&
		order.DeliveryAgentID != nil &&
		*order.DeliveryAgentID == identity.UserID
}

func CanReadOrder(identity entities.Identity, order *entities.Order) bool {
	switch {
	case Has(identity, ReadAll):
		return true
	case Has(identity, ReadOwn) && isOwner(identity, order):
		return true
	case Has(identity, ReadOpen) && order.Status == entities.OrderPending:
		return true
	case Has(identity, ReadAssigned) && IsAssignedAgent(identity, order):
		return true
	}
	return false
}

// CanManageOrder: принять ставку или отменить заказ может владелец или админ.
func CanManageOrder(identity entities.Identity, order *entities.Order) bool {
	return Has(identity, ManageAll) || (Has(identity, ManageOwn) && isOwner(identity, order))
}

// CanCancel: клиент отменяет свой заказ до передачи курьеру, админ любой нетерминальный.
func CanCancel(identity entities.Identity, order *entities.Order) bool {
	if !Has(identity, WriteStatus) || !CanManageOrder(identity, order) {
		return false
	}
	if Has(identity, ManageAll) {
		return true
	}
	return order.Status == entities.OrderPending || order.Status == entities.OrderConfirmed
}

// OrderFilter сужает выборку заказов до видимых пользователю.
func OrderFilter(identity entities.Identity) (entities.OrderFilter, bool) {
	switch {
	case Has(identity, ReadAll):
		return entities.OrderFilter{}, true
	case Has(identity, ReadOwn):
		customerID := identity.UserID
		return entities.OrderFilter{CustomerID: &customerID}, true
	case Has(identity, ReadOpen):
		agentID := identity.UserID
		return entities.OrderFilter{OpenOrAssignedTo: &agentID}, true
	}
	return entities.OrderFilter{}, false
}

// Redact скрывает код доставки от курьера: код подтверждает передачу и
// должен прийти от клиента.
func Redact(identity entities.Identity, order *entities.Order) *entities.Order {
	if order == nil || identity.Role != entities.RoleDelivery || order.DeliveryCode == nil {
		return order
	}
	redacted := *order
	redacted.DeliveryCode = nil
	return &redacted
}

func RedactList(identity entities.Identity, orders []entities.Order) []entities.Order {
	result := make([]entities.Order, 0, len(orders))
	for i := range orders {
		result = append(result, *Redact(identity, &orders[i]))
	}
	return result
}
