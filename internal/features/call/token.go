package call

import (
	"github.com/AgoraIO-Community/go-tokenbuilder/rtctokenbuilder2"
)

const (
	rolePublisher  = "publisher"
	roleSubscriber = "subscriber"
)

// rtcRole maps the wire name; anything unrecognized publishes
func rtcRole(name string) (rtctokenbuilder2.Role, string) {
	if name == roleSubscriber {
		return rtctokenbuilder2.RoleSubscriber, roleSubscriber
	}
	return rtctokenbuilder2.RolePublisher, rolePublisher
}

// buildToken signs an RTC token for the subject. Both expiry values are
// seconds from now.
func buildToken(appID, appCert, channel string, subj subject, role rtctokenbuilder2.Role, expire uint32) (string, error) {
	if subj.numeric {
		return rtctokenbuilder2.BuildTokenWithUid(appID, appCert, channel, subj.uid, role, expire, expire)
	}
	return rtctokenbuilder2.BuildTokenWithUserAccount(appID, appCert, channel, subj.account, role, expire, expire)
}
