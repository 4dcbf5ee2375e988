package model

import "testing"

func TestPartyStatus(t *testing.T) {
	cases := []struct {
		name    string
		expired bool
		deleted bool
		want    PartyStatus
	}{
		{"新建", false, false, StatusActive},
		{"已过期未删除", true, false, StatusExpired},
		{"已删除", true, true, StatusDeleted},
		{"未过期但已删除", false, true, StatusDeleted},
	}
	for _, tc := range cases {
		p := Party{Expired: tc.expired, IsDeleted: tc.deleted}
		if got := p.Status(); got != tc.want {
			t.Errorf("%s: 期望 %s，实际 %s", tc.name, tc.want, got)
		}
	}
}
