package repository

import (
	"howett.net/plist"

	"github.com/cuemby/snapvault/pkg/repoerr"
)

// ComputerInfo is the decoded body of a computer's "computerinfo"
// property list. ID is not part of the plist document; it is the
// computer's own UUID, carried over from whichever key it was fetched
// under.
type ComputerInfo struct {
	ID       string
	User     string
	Computer string
}

// computerInfoDoc mirrors only the fields of the plist document this
// client consumes; every other key (there are several Arq does not
// document) is ignored by plist.Unmarshal.
type computerInfoDoc struct {
	User     string `plist:"userName"`
	Computer string `plist:"computerName"`
}

func parseComputerInfo(id string, data []byte) (ComputerInfo, error) {
	var doc computerInfoDoc
	if err := plist.Unmarshal(data, &doc); err != nil {
		return ComputerInfo{}, repoerr.MalformedData(err)
	}
	return ComputerInfo{ID: id, User: doc.User, Computer: doc.Computer}, nil
}
