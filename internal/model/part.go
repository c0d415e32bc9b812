package model

import "database/sql"

// ConditionUnknown is stored when a part is created without a
// condition. Reads therefore never see an empty condition.
const ConditionUnknown = "unknown"

// CarPart represents a row in the `car_parts` table. The part number
// is the caller-supplied primary identity, not a generated surrogate,
// and it never changes once the row exists.
//
// Fields:
//  PartNumber – positive integer identity chosen by the caller.
//  Name       – human readable part name; never empty.
//  Condition  – free-form condition string, "unknown" when not given.
//  Image      – optional image URL. NULL when the caller supplied
//               nothing or a string that does not parse as a URL.
type CarPart struct {
	PartNumber uint64         // car_parts.part_number
	Name       string         // car_parts.name
	Condition  string         // car_parts.cond
	Image      sql.NullString // car_parts.image (nullable)
}
