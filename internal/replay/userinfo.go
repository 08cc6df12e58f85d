package replay

import (
	"bytes"
	"encoding/binary"

	"github.com/leighmacdonald/steamid/v4/steamid"
)

// Userinfo payload layout, fixed offsets into the extra-data blob:
// 32-byte null-padded name, little-endian u32 user id, 33-byte null-padded
// steam3 id string.
const (
	userInfoNameLen    = 32
	userInfoSteamIDLen = 33
	userInfoMinLen     = userInfoNameLen + 4 + userInfoSteamIDLen
)

// UserInfoTable is the only string table the analyser consumes.
const UserInfoTable = "userinfo"

// UserInfo is one decoded userinfo string-table payload. EntityID is the
// entity slot the table index maps to (index+1, matching the engine's
// client-slot addressing).
type UserInfo struct {
	Name     string
	UserID   UserID
	SteamID3 string
	SteamID  uint64
	EntityID EntityID
}

// ParseUserInfo decodes a userinfo table entry. An empty or truncated
// payload is a connection teardown for that slot and yields nil.
func ParseUserInfo(index int, extra []byte) *UserInfo {
	if len(extra) < userInfoMinLen {
		return nil
	}

	name := cstring(extra[:userInfoNameLen])
	userID := binary.LittleEndian.Uint32(extra[userInfoNameLen : userInfoNameLen+4])
	steam3 := cstring(extra[userInfoNameLen+4 : userInfoMinLen])

	info := &UserInfo{
		Name:     name,
		UserID:   UserID(userID),
		SteamID3: steam3,
		EntityID: EntityID(index) + 1,
	}

	// Bots carry "BOT" here and stay at SteamID 0.
	if sid := steamid.New(steam3); sid.Valid() {
		info.SteamID = uint64(sid.Int64())
	}
	return info
}

// cstring cuts a null-padded byte field down to its string content.
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
