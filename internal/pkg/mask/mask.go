package mask

import (
	"strings"
)

// Email 脱敏邮箱用于展示："al*****@gmail.com"
func Email(email string) string {
	local, domain, found := strings.Cut(email, "@")
	if !found || domain == "" {
		return "*****"
	}

	keep := 2
	if len(local) < 2 {
		keep = 1
	}
	if keep > len(local) {
		keep = len(local)
	}
	return local[:keep] + "*****@" + domain
}
