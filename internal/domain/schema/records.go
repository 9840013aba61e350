package schema

import "github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"

func readInventory(o *object) entity.Inventory {
	return entity.Inventory{
		ID:        o.str("inventoryId"),
		Name:      o.str("name"),
		Quantity:  o.integer("quantity"),
		Condition: o.str("condition"),
		Code:      o.str("code"),
		CreatedAt: o.timestamp("createdAt"),
		UpdatedAt: o.timestamp("updatedAt"),
		DeletedAt: o.nullableTime("deletedAt"),
	}
}

func readUser(o *object) entity.User {
	return entity.User{
		ID:        o.str("userId"),
		Username:  o.str("username"),
		Email:     o.str("email"),
		Number:    o.optText("number"),
		Password:  o.optStr("password"),
		Role:      o.str("role"),
		CreatedAt: o.timestamp("createdAt"),
		UpdatedAt: o.timestamp("updatedAt"),
		DeletedAt: o.nullableTime("deletedAt"),
	}
}

func readBorrow(o *object) entity.Borrow {
	b := entity.Borrow{
		ID:         o.str("borrowId"),
		Quantity:   o.integer("quantity"),
		DateBorrow: o.timestamp("dateBorrow"),
		DateReturn: o.nullableTime("dateReturn"),
		UserID:     o.str("userId"),
		AdminID:    o.optStr("adminId"),
		CreatedAt:  o.timestamp("createdAt"),
		UpdatedAt:  o.timestamp("updatedAt"),
		DeletedAt:  o.nullableTime("deletedAt"),
		User:       readBorrowUser(o),
	}
	details := o.list("borrowDetails")
	b.Details = make([]entity.BorrowDetail, 0, len(details))
	for _, d := range details {
		b.Details = append(b.Details, readBorrowDetail(d))
	}
	return b
}

func readBorrowDetail(o *object) entity.BorrowDetail {
	return entity.BorrowDetail{
		ID:          o.str("borrowDetailId"),
		BorrowID:    o.str("borrowId"),
		InventoryID: o.str("inventoryId"),
		Status:      entity.BorrowStatus(o.str("status")),
		CreatedAt:   o.timestamp("createdAt"),
		UpdatedAt:   o.timestamp("updatedAt"),
		DeletedAt:   o.nullableTime("deletedAt"),
		Inventory:   readInventoryRef(o),
	}
}

func readReturn(o *object) entity.Return {
	r := entity.Return{
		ID:         o.str("returnId"),
		BorrowID:   o.str("borrowId"),
		Quantity:   o.integer("quantity"),
		DateBorrow: o.timestamp("dateBorrow"),
		DateReturn: o.nullableTime("dateReturn"),
		LateDays:   o.integer("lateDays"),
		CreatedAt:  o.timestamp("createdAt"),
		UpdatedAt:  o.timestamp("updatedAt"),
		DeletedAt:  o.nullableTime("deletedAt"),
	}
	if b, ok := o.child("borrow"); ok {
		rb := &entity.ReturnBorrow{
			Status: entity.BorrowStatus(b.optStr("status")),
			User:   readBorrowUser(b),
		}
		details := b.list("borrowDetails")
		rb.Details = make([]entity.ReturnDetail, 0, len(details))
		for _, d := range details {
			rb.Details = append(rb.Details, entity.ReturnDetail{
				Status:    entity.BorrowStatus(d.optStr("status")),
				Inventory: readInventoryRef(d),
			})
		}
		r.Borrow = rb
	}
	return r
}

func readInventoryRef(o *object) *entity.InventoryRef {
	inv, ok := o.child("inventory")
	if !ok {
		return nil
	}
	return &entity.InventoryRef{ID: inv.optStr("inventoryId"), Name: inv.optStr("name")}
}

func readBorrowUser(o *object) *entity.BorrowUser {
	u, ok := o.child("user")
	if !ok {
		return nil
	}
	return &entity.BorrowUser{Username: u.optStr("username")}
}
