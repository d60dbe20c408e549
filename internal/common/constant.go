package common

// TimestampLayout is the layout of the save timestamp written next to the
// answers cell.
const TimestampLayout = "2006-01-02 15:04:05"

// DefaultTimeZone is the zone save timestamps are rendered in unless the
// configuration names another one.
const DefaultTimeZone = "Asia/Seoul"
