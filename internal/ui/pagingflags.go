package ui

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
)

// AddPagingFlags adds the listing window flags to a command.
func AddPagingFlags(cmd *cobra.Command) {
	cmd.Flags().Int("limit", 0, "Page size of each listing request (0 reads a single empty page)")
	cmd.Flags().Int("offset", 0, "Number of items to skip")
	cmd.Flags().StringSlice("fields", nil, "Only return these keys (e.g. name,path,size)")
	cmd.Flags().String("sort", "", "Sort key, prefix with '-' for descending order")
}

// AddRequestFlags adds the per-call request settings as persistent flags.
func AddRequestFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Duration("timeout", 0, "Deadline of a single request attempt (default from config)")
	cmd.PersistentFlags().Int("retries", 0, "Number of retries on transient errors (default from config)")
	cmd.PersistentFlags().Duration("retry-interval", 0, "Pause between attempts (default from config)")
}

// ParseOptions builds SDK options from whichever paging and request flags
// the command defines. Flags that were not given stay unset, so config and
// SDK defaults apply.
func ParseOptions(cmd *cobra.Command) (*yadisk.Options, error) {
	opts := &yadisk.Options{}
	flags := cmd.Flags()

	if f := flags.Lookup("limit"); f != nil && f.Changed {
		v, err := flags.GetInt("limit")
		if err != nil {
			return nil, fmt.Errorf("error parsing limit flag: %w", err)
		}
		opts.Limit = yadisk.Ptr(v)
	}
	if f := flags.Lookup("offset"); f != nil {
		v, err := flags.GetInt("offset")
		if err != nil {
			return nil, fmt.Errorf("error parsing offset flag: %w", err)
		}
		opts.Offset = v
	}
	if f := flags.Lookup("fields"); f != nil {
		v, err := flags.GetStringSlice("fields")
		if err != nil {
			return nil, fmt.Errorf("error parsing fields flag: %w", err)
		}
		opts.Fields = v
	}
	if f := flags.Lookup("sort"); f != nil {
		v, err := flags.GetString("sort")
		if err != nil {
			return nil, fmt.Errorf("error parsing sort flag: %w", err)
		}
		opts.Sort = v
	}
	if f := flags.Lookup("timeout"); f != nil && f.Changed {
		v, err := flags.GetDuration("timeout")
		if err != nil {
			return nil, fmt.Errorf("error parsing timeout flag: %w", err)
		}
		opts.Timeout = yadisk.Ptr(v)
	}
	if f := flags.Lookup("retries"); f != nil && f.Changed {
		v, err := flags.GetInt("retries")
		if err != nil {
			return nil, fmt.Errorf("error parsing retries flag: %w", err)
		}
		opts.Retries = yadisk.Ptr(v)
	}
	if f := flags.Lookup("retry-interval"); f != nil && f.Changed {
		v, err := flags.GetDuration("retry-interval")
		if err != nil {
			return nil, fmt.Errorf("error parsing retry-interval flag: %w", err)
		}
		opts.RetryInterval = yadisk.Ptr(v)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}
