package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/fitlog/fitlog-cli/internal/live"
	"github.com/fitlog/fitlog-cli/internal/model"
)

// SetEquipment records whether the catalog item is available. The
// equipment id is the stable catalog key, so setting twice replaces.
func (s *Store) SetEquipment(f model.EquipmentFlag) error {
	if strings.TrimSpace(f.EquipmentID) == "" {
		return fmt.Errorf("equipment id is required")
	}

	s.global.RLock()
	defer s.global.RUnlock()
	s.equipmentMu.Lock()
	defer s.equipmentMu.Unlock()

	_, err := s.exec("set equipment flag",
		`INSERT OR REPLACE INTO equipment(equipment_id, is_available) VALUES(?, ?)`,
		strings.TrimSpace(f.EquipmentID), f.IsAvailable)
	if err != nil {
		return err
	}
	notify(s.equipmentFeed, s.readEquipment)
	return nil
}

// DeleteEquipment removes a flag. Returns 0 without error on a miss.
func (s *Store) DeleteEquipment(equipmentID string) (int64, error) {
	if strings.TrimSpace(equipmentID) == "" {
		return 0, fmt.Errorf("equipment id is required")
	}

	s.global.RLock()
	defer s.global.RUnlock()
	s.equipmentMu.Lock()
	defer s.equipmentMu.Unlock()

	res, err := s.exec("delete equipment flag",
		`DELETE FROM equipment WHERE equipment_id = ?`, strings.TrimSpace(equipmentID))
	if err != nil {
		return 0, err
	}
	n, err := affectedCount("delete equipment flag", res)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		notify(s.equipmentFeed, s.readEquipment)
	}
	return n, nil
}

// Equipment lists every flag, ordered by id for stable output.
func (s *Store) Equipment() ([]model.EquipmentFlag, error) {
	s.global.RLock()
	defer s.global.RUnlock()
	return s.readEquipment()
}

func (s *Store) WatchEquipment(ctx context.Context) *live.Subscription[[]model.EquipmentFlag] {
	s.global.RLock()
	defer s.global.RUnlock()
	return subscribe(ctx, &s.equipmentMu, s.equipmentFeed, s.readEquipment)
}

func (s *Store) readEquipment() ([]model.EquipmentFlag, error) {
	rows, err := s.db.Query(`SELECT equipment_id, is_available FROM equipment ORDER BY equipment_id ASC`)
	if err != nil {
		return nil, storageErr("list equipment flags", err)
	}
	defer rows.Close()

	flags := make([]model.EquipmentFlag, 0)
	for rows.Next() {
		var f model.EquipmentFlag
		if err := rows.Scan(&f.EquipmentID, &f.IsAvailable); err != nil {
			return nil, storageErr("scan equipment flag", err)
		}
		flags = append(flags, f)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate equipment flags", err)
	}
	return flags, nil
}
