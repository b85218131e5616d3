package service

import (
	"github.com/indrek777/whtzup-app-sub002/internal/models"
)

// CanEditEvent decides whether the principal may mutate (update/delete)
// the event. Pure function, side effect yok; kural önceliği:
//
//  1. anonim istek → asla
//  2. aktif premium → her event
//  3. eventin sahibi → evet
//  4. source == "user" ve created_by NULL → evet; eski migrate edilmiş
//     sahipsiz kayıtlar herhangi bir authenticated kullanıcı tarafından
//     düzenlenebilir kalmalı, ürün onayı olmadan kaldırılmamalı
//  5. aksi halde → hayır
func CanEditEvent(p *models.Principal, event *models.Event) bool {
	if p == nil {
		return false
	}
	if p.Premium {
		return true
	}
	if event.CreatedBy != nil && *event.CreatedBy == p.UserID {
		return true
	}
	if event.Source == models.SourceUser && event.CreatedBy == nil {
		return true
	}
	return false
}
