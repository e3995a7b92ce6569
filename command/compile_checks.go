package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[CreateObjectMessage] = (*CreateObjectCommand)(nil)
	_ gocmd.Commander[SaveObjectMessage]   = (*SaveObjectCommand)(nil)
	_ gocmd.Commander[DeleteObjectMessage] = (*DeleteObjectCommand)(nil)
)
